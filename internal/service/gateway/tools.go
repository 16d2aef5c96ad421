package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"pdfsummarizer/internal/models"
)

const (
	DocumentChunkSizeDefault = 2000
	DocumentChunkSizeMin     = 500
	DocumentChunkSizeMax     = 4000
)

type documentContextKey struct{}

// WithDocument attaches the request's extracted document so the reader tool
// can serve it. Requests never share documents; the value lives and dies
// with one request context.
func WithDocument(ctx context.Context, doc *models.Document) context.Context {
	if doc == nil {
		return ctx
	}
	return context.WithValue(ctx, documentContextKey{}, doc)
}

func DocumentFromContext(ctx context.Context) *models.Document {
	val := ctx.Value(documentContextKey{})
	if val == nil {
		return nil
	}
	doc, _ := val.(*models.Document)
	return doc
}

func initDocumentTools() []tool.BaseTool {
	var tools []tool.BaseTool
	if dr := initDocumentReader(); dr != nil {
		tools = append(tools, dr)
	}
	return tools
}

// document reader tool
type documentReader struct{}

type documentReaderParams struct {
	ChunkIndex int `json:"chunk_index,omitempty"`
	ChunkSize  int `json:"chunk_size,omitempty"`
}

func initDocumentReader() tool.InvokableTool {
	reader := &documentReader{}
	info := &schema.ToolInfo{
		Name: "document_reader",
		Desc: "Re-read a segment of the uploaded PDF text when the excerpt in the prompt is not enough. Provide chunk_index (and optional chunk_size) to fetch a specific segment.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"chunk_index": {
				Desc:     "Zero-based chunk index to read, default 0.",
				Type:     schema.Integer,
				Required: false,
			},
			"chunk_size": {
				Desc:     "Number of characters per chunk (max 4000, default 2000).",
				Type:     schema.Integer,
				Required: false,
			},
		}),
	}
	return utils.NewTool(info, reader.run)
}

func (t *documentReader) run(ctx context.Context, params *documentReaderParams) (string, error) {
	doc := DocumentFromContext(ctx)
	if doc == nil {
		return "", errors.New("no document available for this session")
	}
	if doc.Text == "" {
		return "", errors.New("document has no readable text content")
	}

	chunkSize := DocumentChunkSizeDefault
	chunkIndex := 0
	if params != nil {
		if params.ChunkSize > 0 {
			chunkSize = params.ChunkSize
		}
		if params.ChunkIndex > 0 {
			chunkIndex = params.ChunkIndex
		}
	}
	if chunkSize > DocumentChunkSizeMax {
		chunkSize = DocumentChunkSizeMax
	}
	if chunkSize < DocumentChunkSizeMin {
		chunkSize = DocumentChunkSizeMin
	}

	runes := []rune(doc.Text)
	totalChunks := (len(runes) + chunkSize - 1) / chunkSize
	if chunkIndex >= totalChunks {
		chunkIndex = totalChunks - 1
	}
	start := chunkIndex * chunkSize
	end := start + chunkSize
	if end > len(runes) {
		end = len(runes)
	}
	segment := string(runes[start:end])
	return fmt.Sprintf("Document (%d pages)\nChunk %d/%d\n\n%s", doc.PageCount, chunkIndex+1, totalChunks, segment), nil
}
