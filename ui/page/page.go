// Package page holds the server-rendered page shells. The components are
// written directly against the templ runtime; the board itself is drawn
// client-side from /api/board/state.
package page

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// BoardPage renders the HTML shell that boots the board front-end.
func BoardPage(title, workloadUnit string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%[1]s</title>
<link rel="stylesheet" href="/static/css/board.css">
</head>
<body data-workload-unit="%[2]s">
<header>
<h1>%[1]s</h1>
<div id="workload-display"><div id="workload-bar"></div><span id="workload-text"></span></div>
</header>
<main id="kanban-board"></main>
<script src="/static/js/board.js"></script>
</body>
</html>
`, templ.EscapeString(title), templ.EscapeString(workloadUnit))
		return err
	})
}
