package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fediwatch/reporter/pkg/fedi"
)

type Message struct {
	Content string `json:"content"`
}

// Messager posts run updates to a Discord-style webhook. With notify false
// every call is a no-op, which keeps call sites unconditional.
type Messager struct {
	BaseURL      string
	InstanceName string

	notify bool
}

func NewMessager(baseURL, instanceName string, notify bool) fedi.WebhookMessager {
	return &Messager{
		BaseURL:      baseURL,
		InstanceName: instanceName,
		notify:       notify,
	}
}

func (m *Messager) Notify(ctx context.Context, message string) error {
	return m.send(ctx, message)
}

func (m *Messager) NotifyError(ctx context.Context, errorMessage error) error {
	return m.send(ctx, fmt.Sprintf("error: %s", errorMessage.Error()))
}

func (m *Messager) send(ctx context.Context, message string) error {
	if !m.notify {
		return nil
	}

	data, err := json.Marshal(Message{Content: fmt.Sprintf("[%s] %s", m.InstanceName, message)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.New("error sending message")
	}

	return nil
}
