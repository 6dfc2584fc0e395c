package service

import (
	"bytes"
	"sync"

	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

// raw HTML in documents is omitted; goldmark is safe by default
func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownInstance
}

// rendered 渲染结果
type rendered struct {
	HTML string
	CSS  string
}

// codeLexer picks the lexer for the syntax hint, then by content analysis
func codeLexer(syntax, content string) chroma.Lexer {
	lexer := lexers.Get(syntax)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func highlight(content, syntax, style string) (rendered, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4))
	st := styles.Get(style)

	it, err := codeLexer(syntax, content).Tokenise(nil, content)
	if err != nil {
		return rendered{}, errors.Wrap(err, "tokenise code")
	}
	var html, css bytes.Buffer
	if err := formatter.Format(&html, st, it); err != nil {
		return rendered{}, errors.Wrap(err, "format code")
	}
	if err := formatter.WriteCSS(&css, st); err != nil {
		return rendered{}, errors.Wrap(err, "write code css")
	}
	return rendered{HTML: html.String(), CSS: css.String()}, nil
}

// renderDocument renders a decrypted document body to HTML.
// CODE bodies are highlighted with the syntax hint, TEXT bodies are GitHub flavoured markdown.
// renderDocument 把已解密的正文渲染为 HTML
func renderDocument(doc *domain.Document, style string) (rendered, error) {
	if doc.Type == domain.DocumentTypeCode {
		return highlight(doc.Content, doc.Syntax, style)
	}
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(doc.Content), &buf); err != nil {
		return rendered{}, errors.Wrap(err, "render markdown")
	}
	return rendered{HTML: buf.String()}, nil
}
