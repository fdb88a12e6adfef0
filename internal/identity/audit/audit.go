package audit

import (
	"context"

	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

// Audit actions for the identity area.
const (
	ActionRegister       = "user.register"
	ActionLogin          = "user.login"
	ActionLoginFailed    = "user.login_failed"
	ActionRefreshToken   = "user.refresh_token"
	ActionUpdateProfile  = "user.update_profile"
	ActionChangePassword = "user.change_password"
)

const (
	fieldAction = "action"
	fieldDetail = "detail"
)

// Log writes an audit entry for an action performed by userID.
func Log(ctx context.Context, action string, userID uint, detail string) {
	log.Ctx(ctx).Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(fieldAction, action).
		Uint(log.FieldUserID, userID).
		Str(fieldDetail, detail).
		Msg("audit")
}
