// Package slack implements the optional Slack delivery channel: posting
// tool output to channels and managing the acknowledgement reaction
// added to a user message while its request is processed.
package slack
