package schema

import (
	// Packages
	uitable "github.com/mutablelogic/go-agentx/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// AgentTable implements table.TableData for a list of agents
type AgentTable []Agent

// WorkforceTable implements table.TableData for a list of workforces
type WorkforceTable []Workforce

// ConversationTable implements table.TableData for a list of conversations,
// highlighting the current one
type ConversationTable struct {
	Conversations []Conversation
	Current       string
}

// MessageTable implements table.TableData for a conversation history
type MessageTable []Message

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxCellWidth = 60
)

///////////////////////////////////////////////////////////////////////////////
// AGENT TABLE

func (t AgentTable) Header() []string {
	return []string{"AGENT", "ID", "UPDATED"}
}

func (t AgentTable) Len() int {
	return len(t)
}

func (t AgentTable) Row(i int) []any {
	return []any{t[i].Name, t[i].ID, t[i].UpdatedAt}
}

///////////////////////////////////////////////////////////////////////////////
// WORKFORCE TABLE

func (t WorkforceTable) Header() []string {
	return []string{"WORKFORCE", "ID", "MANAGER", "AGENTS", "DESCRIPTION"}
}

func (t WorkforceTable) Len() int {
	return len(t)
}

func (t WorkforceTable) Row(i int) []any {
	w := t[i]
	return []any{w.Name, w.ID, w.Manager.Name, len(w.Agents), uitable.Truncate(w.Description, maxCellWidth)}
}

///////////////////////////////////////////////////////////////////////////////
// CONVERSATION TABLE

func (t ConversationTable) Header() []string {
	return []string{"CONVERSATION", "ID", "AGENT", "UPDATED"}
}

func (t ConversationTable) Len() int {
	return len(t.Conversations)
}

func (t ConversationTable) Row(i int) []any {
	c := t.Conversations[i]
	row := []any{uitable.Truncate(c.Title, maxCellWidth), c.ID, c.AgentID, c.UpdatedAt}
	if t.Current != "" && c.ID == t.Current {
		for j, v := range row {
			row[j] = uitable.Bold{Value: v}
		}
	}
	return row
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGE TABLE

func (t MessageTable) Header() []string {
	return []string{"ROLE", "TEXT", "CREATED"}
}

func (t MessageTable) Len() int {
	return len(t)
}

func (t MessageTable) Row(i int) []any {
	m := t[i]
	role := any(string(m.Role))
	if m.Role == RoleBot {
		role = uitable.Bold{Value: string(m.Role)}
	}
	var text string
	if m.Text != nil {
		text = uitable.Truncate(*m.Text, maxCellWidth)
	}
	return []any{role, text, m.CreatedAt}
}
