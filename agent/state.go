package agent

import "the-daily/models"

// State is the record threaded through the answer pipeline. Each stage
// consumes it and returns it augmented with its own output field; there is
// no branching, retrying or cycling between stages.
type State struct {
	Query     string
	History   []models.ChatMessage
	Retrieved []models.RetrievedPost
	Response  string
}
