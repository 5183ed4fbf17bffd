/*
agentx is a client for the AgentX conversational-agent platform
(https://www.agentx.so). The API client lives in pkg/agentx, the wire types
in pkg/schema and the chat stream decoder in pkg/stream.
*/
package agentx
