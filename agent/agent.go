// Package agent answers natural-language questions over the day's indexed
// corpus: a strict linear retrieve → respond pipeline with optional
// conversational memory supplied by the caller.
package agent

import (
	"context"

	"the-daily/internal/logger"
	"the-daily/models"
)

// Fixed user-visible responses. Query-time failures always degrade to one of
// these instead of surfacing an error to the caller.
const (
	NoResultsResponse = "I couldn't find any relevant stories for that query. Try rephrasing or asking about a different topic."
	FailureResponse   = "Sorry, I couldn't generate a response right now. Please try again in a moment."
)

// Engine holds the query-time collaborators: the retriever over the loaded
// index/metadata pair and the responder. Construct it once at server start
// and share it across requests; it only ever reads.
type Engine struct {
	retriever *Retriever
	responder *Responder
}

// NewEngine wires the answer pipeline.
func NewEngine(retriever *Retriever, responder *Responder) *Engine {
	return &Engine{retriever: retriever, responder: responder}
}

// Answer runs one query through retrieve → respond and always returns
// user-facing text. Empty retrieval short-circuits with the fixed no-results
// message, never calling the generator on empty evidence.
func (e *Engine) Answer(ctx context.Context, query string, history []models.ChatMessage) string {
	state := State{Query: query, History: history}

	retrieved, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		logger.Log.Errorf("retrieval failed: %v", err)
		return FailureResponse
	}
	state.Retrieved = retrieved

	if len(state.Retrieved) == 0 {
		return NoResultsResponse
	}

	response, err := e.responder.Respond(ctx, state)
	if err != nil || response == "" {
		logger.Log.Errorf("generation failed: %v", err)
		return FailureResponse
	}
	state.Response = response
	logger.Log.Infof("generated response (%d chars)", len(response))
	return state.Response
}
