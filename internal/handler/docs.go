package handler

import (
	"net/http"

	"github.com/travelworld/tour-admin/spec"
)

// docsPage embeds the Scalar API reference UI, pointing it at the served spec.
const docsPage = `<!doctype html>
<html>
<head>
  <title>Tour Admin API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/openapi.yaml"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`

// GetOpenAPISpec handles GET /openapi.yaml, serving the embedded spec so the
// document and the running code are always in sync.
func (s *Server) GetOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// GetDocs handles GET /docs, serving the interactive API reference.
func (s *Server) GetDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsPage))
}
