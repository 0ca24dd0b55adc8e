package handlers

import (
	"html/template"
	"net/http"

	"gatekeeper/models"

	"github.com/gin-gonic/gin"
)

// decisionResult is the semantic outcome of an approve/reject click.
// Rendering (JSON vs HTML) is selected afterwards; the state machine never
// sees the presentation concern.
type decisionResult struct {
	Post   *models.Post
	Action string // "approved" or "rejected"
}

// DecisionTemplates renders the HTML confirmation fragment shown when a
// reviewer follows an action link from the notification message.
var DecisionTemplates = template.Must(template.New("decision").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Submission {{.Action}}</title></head>
<body>
  <h1>Submission #{{.ID}} {{.Action}}</h1>
  <p>Status: <strong>{{.Status}}</strong></p>
  <blockquote>{{.Excerpt}}</blockquote>
  <p>You can close this page.</p>
</body>
</html>
`))

// respondDecision renders a decision result as JSON when the Accept header
// asks for it, otherwise as the HTML confirmation fragment.
func respondDecision(c *gin.Context, result decisionResult) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		respondDataMessage(c, http.StatusOK, result.Post, "post "+result.Action)
	default:
		excerpt := result.Post.Content
		if len(excerpt) > 280 {
			excerpt = excerpt[:280] + "..."
		}
		c.HTML(http.StatusOK, "decision", gin.H{
			"ID":      result.Post.ID,
			"Action":  result.Action,
			"Status":  result.Post.Status,
			"Excerpt": excerpt,
		})
	}
}
