package query

import (
	"context"

	"github.com/ixugo/goddd/pkg/reason"
)

// Retain marks or unmarks an event as retained on the instance owning
// the camera. Backend-reported failure surfaces as *frigate.RetainError.
func (c Core) Retain(ctx context.Context, cameraID, eventID string, retain bool) error {
	cam, err := c.cameras.GetCamera(ctx, cameraID)
	if err != nil {
		return err
	}
	inst, ok := c.instances[cam.Instance]
	if !ok {
		return reason.ErrNotFound.Withf("instance[%s] of camera[%s] not registered", cam.Instance, cameraID)
	}
	return inst.Retain(ctx, eventID, retain)
}
