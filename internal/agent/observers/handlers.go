// Package observers wires eino callback handlers that trace each turn's
// prompt rendering and completion rounds through the structured log. Tool
// calls are logged by the dispatcher itself, since tools run outside any
// eino node.
package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// NewTurnCallbacks aggregates the prompt and chat-model handlers into a
// single callbacks.Handler. Attach it to the context before a turn's model
// loop so standalone component calls fire it.
func NewTurnCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}
