package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
	User      any      `json:"user,omitempty"`
	Users     any      `json:"users,omitempty"`
	Vaga      any      `json:"vaga,omitempty"`
	Vagas     any      `json:"vagas,omitempty"`
	Status    any      `json:"status,omitempty"`
}

// Payload attaches a resource to a success response.
type Payload func(*Response)

func WithUser(u any) Payload   { return func(r *Response) { r.User = u } }
func WithUsers(u any) Payload  { return func(r *Response) { r.Users = u } }
func WithVaga(v any) Payload   { return func(r *Response) { r.Vaga = v } }
func WithVagas(v any) Payload  { return func(r *Response) { r.Vagas = v } }
func WithStatus(s any) Payload { return func(r *Response) { r.Status = s } }

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, payload ...Payload) {
	resp := Response{
		Success:   true,
		Message:   message,
		RequestID: requestID(c),
	}
	for _, p := range payload {
		p(&resp)
	}
	c.JSON(code, resp)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, details []string) {
	c.JSON(code, Response{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: requestID(c),
	})
}
