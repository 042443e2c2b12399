package daemon

import (
	"github.com/bnema/keyrd/internal/control"
)

// ControlHandler adapts Manager to control.Handler, so the daemon process
// can expose its running devices over the control socket.
type ControlHandler struct {
	manager *Manager
}

// NewControlHandler wraps manager for use as a control.Handler.
func NewControlHandler(manager *Manager) *ControlHandler {
	return &ControlHandler{manager: manager}
}

// HandleStatus reports every running device, its bound profile, and its
// tap-hold processor's current count of tracked (pending or held) keys.
func (h *ControlHandler) HandleStatus(req control.Message) control.Message {
	h.manager.mu.Lock()
	devices := make([]control.DeviceStatus, 0, len(h.manager.devices))
	for id, dev := range h.manager.devices {
		dev.mu.RLock()
		devices = append(devices, control.DeviceStatus{
			Identifier:     id,
			Profile:        dev.profile,
			PendingTapHold: dev.state.TapHold().Len(),
		})
		dev.mu.RUnlock()
	}
	h.manager.mu.Unlock()

	return control.NewResponse(req, control.TypeStatusResponse, control.StatusPayload{Devices: devices})
}

// HandleActivate reloads a running device with a different profile.
func (h *ControlHandler) HandleActivate(req control.Message, payload control.ActivatePayload) control.Message {
	h.manager.mu.Lock()
	dev, ok := h.manager.devices[payload.Identifier]
	h.manager.mu.Unlock()
	if !ok {
		return control.NewErrorResponse(req, "device not running: "+payload.Identifier)
	}

	root, err := h.manager.profiles.Load(payload.Profile)
	if err != nil {
		return control.NewErrorResponse(req, err.Error())
	}
	if err := h.manager.profiles.Activate(payload.Profile); err != nil {
		return control.NewErrorResponse(req, err.Error())
	}

	cfg := deviceConfigFor(root, payload.Identifier)
	dev.Reload(payload.Profile, cfg, h.manager.cfg.TapHoldN)

	return control.NewResponse(req, control.TypeActivateResponse, nil)
}

// HandleListDevices reports every device identifier currently running.
func (h *ControlHandler) HandleListDevices(req control.Message) control.Message {
	return control.NewResponse(req, control.TypeListResponse, control.ListDevicesPayload{
		Identifiers: h.manager.ActiveDevices(),
	})
}
