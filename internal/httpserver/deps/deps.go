package deps

import (
	"github.com/snippetd/snippetd/internal/logger"
	"github.com/snippetd/snippetd/internal/snippet"
)

type Deps struct {
	Logger   logger.Logger
	Snippets *snippet.Service // orchestrates create/get/list
	// Add more shared deps later (metrics, etc.)
}
