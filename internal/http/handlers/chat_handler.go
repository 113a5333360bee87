// README: Chat handler for the website widget.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"chichat/internal/service"
)

// Replier is satisfied by *service.ChatService.
type Replier interface {
	Reply(ctx context.Context, msg service.IncomingMessage) (*service.ChatReply, error)
}

type ChatHandler struct {
	chat Replier
}

func NewChatHandler(chat Replier) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatReq struct {
	Message      string  `json:"message"`
	CustomerName *string `json:"customerName"`
}

type chatResp struct {
	Reply        string  `json:"reply"`
	CustomerName *string `json:"customerName"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	msg := service.IncomingMessage{Text: req.Message}
	if req.CustomerName != nil {
		msg.KnownCustomerName = *req.CustomerName
	}

	reply, err := h.chat.Reply(c.Request.Context(), msg)
	if err != nil {
		writeChatError(c, err)
		return
	}

	resp := chatResp{Reply: reply.Reply}
	if reply.CustomerName != "" {
		name := reply.CustomerName
		resp.CustomerName = &name
	}
	writeJSON(c, http.StatusOK, resp)
}
