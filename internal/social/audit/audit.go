package audit

import (
	"context"

	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

const (
	ActionToggleFollow      = "social.toggle_follow"
	ActionToggleCloseFriend = "social.toggle_close_friend"
)

// Log emits an audit record for a social-graph mutation.
func Log(ctx context.Context, action string, actorID, targetID uint, result string) {
	log.Ctx(ctx).Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str("action", action).
		Uint("actor_id", actorID).
		Uint("target_id", targetID).
		Str("result", result).
		Msg("audit")
}
