// Package intake normalises raw candidate input before it reaches the conversation.
//
// All functions are pure and safe for concurrent use:
//   - Sanitize bounds and cleans a raw message.
//   - IsExitCommand detects a request to end the conversation.
//   - ParseTechStack splits a free-text technology list into names.
package intake
