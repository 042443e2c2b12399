package control

import (
	"fmt"
	"net"
	"time"
)

// Client is a short-lived connection to the daemon's control socket: one
// request, one response, then the caller decides whether to reuse it.
type Client struct {
	conn net.Conn
}

// Dial connects to the daemon's control socket at socketPath.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("control: dialing %s: %w", socketPath, err)
	}
	return &Client{conn: conn}, nil
}

// Call sends req and returns the daemon's response.
func (c *Client) Call(req Message) (Message, error) {
	if err := writeMessage(c.conn, req); err != nil {
		return Message{}, err
	}
	return readMessage(c.conn)
}

// Status requests the current device/profile status.
func (c *Client) Status() (StatusPayload, error) {
	resp, err := c.Call(NewRequest(TypeStatus, nil))
	if err != nil {
		return StatusPayload{}, err
	}
	if resp.Type == TypeError {
		return StatusPayload{}, fmt.Errorf("control: %v", resp.Payload)
	}
	var payload StatusPayload
	if err := decodePayload(resp.Payload, &payload); err != nil {
		return StatusPayload{}, err
	}
	return payload, nil
}

// Activate requests that identifier switch to profile.
func (c *Client) Activate(identifier, profile string) error {
	resp, err := c.Call(NewRequest(TypeActivate, ActivatePayload{Identifier: identifier, Profile: profile}))
	if err != nil {
		return err
	}
	if resp.Type == TypeError {
		return fmt.Errorf("control: %v", resp.Payload)
	}
	return nil
}

// ListDevices requests every device identifier currently running.
func (c *Client) ListDevices() ([]string, error) {
	resp, err := c.Call(NewRequest(TypeListDevices, nil))
	if err != nil {
		return nil, err
	}
	if resp.Type == TypeError {
		return nil, fmt.Errorf("control: %v", resp.Payload)
	}
	var payload ListDevicesPayload
	if err := decodePayload(resp.Payload, &payload); err != nil {
		return nil, err
	}
	return payload.Identifiers, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
