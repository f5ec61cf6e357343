package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/histutil"
	"src.tin.sh/pkg/opts"
	"src.tin.sh/pkg/shell"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	sess    *eval.Session
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	sess := eval.NewSession(opts.New(),
		histutil.NewLog(histutil.NewMemStore(), func() int { return 0 }))
	sess.Executor = shell.NewExecutor()
	return &server{sess, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"$"}},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	from, to := wordAt(content, lspPositionToIdx(content, params.Position))
	word := content[from:to]
	desc := s.describe(word)
	if desc == "" {
		return lsp.Hover{}, nil
	}
	rg := lsp.Range{
		Start: lspPositionFromIdx(content, from),
		End:   lspPositionFromIdx(content, to),
	}
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "text", Value: desc}},
		Range:    &rg,
	}, nil
}

// Returns what a word resolves to, or "" if it doesn't resolve.
func (s *server) describe(word string) string {
	if word == "" || word == "{" || word == "}" {
		return ""
	}
	kinds := eval.AllKinds
	if strings.HasPrefix(word, "$") {
		word, kinds = word[1:], eval.VariableKind|eval.EnvironmentKind
	}
	sym, ok := s.sess.Symbols.Resolve(word, kinds)
	if !ok {
		return ""
	}
	switch sym := sym.(type) {
	case eval.PrimitiveSymbol:
		return fmt.Sprintf("%s: primitive\n%s", word, sym.Primitive.Desc)
	case eval.BinarySymbol:
		return fmt.Sprintf("%s: binary %s", word, sym.Path)
	case eval.VariableSymbol:
		if desc := opts.Describe(word); desc != "" && kinds == eval.AllKinds {
			return fmt.Sprintf("%s: option = %s\n%s", word, sym.Value, desc)
		}
		return fmt.Sprintf("%s: variable = %s", word, sym.Value)
	case eval.EnvironmentSymbol:
		return fmt.Sprintf("%s: environment variable = %s", word, sym.Value)
	default:
		return fmt.Sprintf("%s: %v", word, sym.Kind())
	}
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	lineStart := strings.LastIndexAny(content[:idx], "\r\n") + 1
	lineEnd := idx + strings.IndexAny(content[idx:], "\r\n")
	if lineEnd < idx {
		lineEnd = len(content)
	}
	head, cands, _ := shell.Complete(s.sess, nil, content[lineStart:lineEnd], idx-lineStart)

	lspRange := lsp.Range{
		Start: lspPositionFromIdx(content, lineStart+len(head)),
		End:   params.Position,
	}
	items := make([]lsp.CompletionItem, len(cands))
	for i, cand := range cands {
		kind := lsp.CIKFunction
		if strings.HasPrefix(cand, "$") {
			kind = lsp.CIKVariable
		}
		items[i] = lsp.CompletionItem{
			Label: cand,
			Kind:  kind,
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: cand,
			},
		}
	}
	return items, nil
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(content)})
}

func diagnostics(content string) []lsp.Diagnostic {
	var synErr *shell.SyntaxError
	if !errors.As(shell.Check(content), &synErr) {
		return []lsp.Diagnostic{}
	}
	line := synErr.Line - 1
	return []lsp.Diagnostic{{
		Range: lsp.Range{
			Start: lsp.Position{Line: line},
			End:   lsp.Position{Line: line, Character: lineWidth(content, line)},
		},
		Severity: lsp.Error,
		Source:   "parse",
		Message:  synErr.Msg,
	}}
}

// Returns the bounds of the word around idx. Words are separated by
// whitespace.
func wordAt(s string, idx int) (int, int) {
	isSpace := func(b byte) bool { return strings.IndexByte(" \t\r\n", b) >= 0 }
	from, to := idx, idx
	for from > 0 && !isSpace(s[from-1]) {
		from--
	}
	for to < len(s) && !isSpace(s[to]) {
		to++
	}
	return from, to
}

// Returns the width in UTF-16 units of the given line of s.
func lineWidth(s string, line int) int {
	width := 0
	walkString(s, func(_ int, p lsp.Position) bool {
		if p.Line == line {
			width = p.Character
		}
		return p.Line <= line
	})
	return width
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
