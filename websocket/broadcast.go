// Package websocket handles real-time fan-out of board changes to viewers.
// file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"go-con-board/logger"
)

// broadcast is the channel every board change flows through.
var broadcast = make(chan []byte, 64)

// HandleMessages listens for messages on the broadcast channel and
// distributes them to connections. Run it once from main.
func HandleMessages() {
	for {
		dispatch(<-broadcast)
	}
}

// dispatch fans one message out to the matching connections.
func dispatch(msg []byte) {
	var msgMap map[string]interface{}
	var eventFilter string

	// messages carrying an "event" field only go to viewers of that event
	if err := json.Unmarshal(msg, &msgMap); err == nil {
		if e, ok := msgMap["event"].(string); ok {
			eventFilter = e
		}
	}

	connectionsMu.Lock()
	defer connectionsMu.Unlock()
	for c := range connections {
		if eventFilter != "" && c.eventSlug != eventFilter {
			continue
		}
		select {
		case c.send <- msg:
		default:
			logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
		}
	}
}

// BroadcastVoteUpdate tells every viewer of an event that a submission's
// tally changed.
func BroadcastVoteUpdate(eventSlug, submissionID string, voteCount int) {
	msg, err := json.Marshal(map[string]interface{}{
		"action":       "voteUpdate",
		"event":        eventSlug,
		"submissionId": submissionID,
		"voteCount":    voteCount,
	})
	if err != nil {
		logger.Error.Printf("Error marshalling vote update: %v", err)
		return
	}
	broadcast <- msg
}

// BroadcastNewSubmission tells every viewer of an event that a new entry
// appeared on the board.
func BroadcastNewSubmission(eventSlug, submissionID, title string) {
	msg, err := json.Marshal(map[string]interface{}{
		"action":       "newSubmission",
		"event":        eventSlug,
		"submissionId": submissionID,
		"title":        title,
	})
	if err != nil {
		logger.Error.Printf("Error marshalling submission notice: %v", err)
		return
	}
	broadcast <- msg
}

// SendBroadcastMessage allows raw byte data to be sent over the broadcast channel.
func SendBroadcastMessage(data []byte) {
	broadcast <- data
}
