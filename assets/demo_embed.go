package assets

import _ "embed"

// Demo page served by `shade serve`, rendered with html/template.

//go:embed demo/index.html.tmpl
var DemoPageTemplate string
