// Package onebot runs the plugin on a OneBot v11 implementation such as
// go-cqhttp, connected through ZeroBot. Actions go out with CallAction on the
// bot's context and group messages arrive through a ZeroBot matcher.
package onebot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	zero "github.com/wdvxdr1123/ZeroBot"

	"steambot/bot"
)

// Caller runs OneBot actions for one account. *zero.Ctx satisfies it.
type Caller interface {
	CallAction(action string, params zero.Params) zero.APIResponse
}

// Registry finds the connected accounts of the ZeroBot engine.
type Registry struct {
	lookup func(selfID int64) Caller
}

func NewRegistry() *Registry {
	return NewRegistryWith(func(selfID int64) Caller {
		// GetBot returns a nil *Ctx for unknown accounts
		if ctx := zero.GetBot(selfID); ctx != nil {
			return ctx
		}
		return nil
	})
}

// NewRegistryWith uses lookup instead of the engine's bot table.
func NewRegistryWith(lookup func(selfID int64) Caller) *Registry {
	return &Registry{lookup: lookup}
}

func (r *Registry) Bot(botID string) (bot.LegacyBot, error) {
	selfID, err := strconv.ParseInt(botID, 10, 64)
	if err != nil || selfID == 0 {
		return nil, fmt.Errorf("%w: %s", bot.ErrUnknownBot, botID)
	}
	caller := r.lookup(selfID)
	if caller == nil {
		return nil, fmt.Errorf("%w: %s", bot.ErrUnknownBot, botID)
	}
	return &account{caller: caller, selfID: selfID}, nil
}

// AvatarURL is the QQ avatar of id.
func AvatarURL(id any) string {
	return fmt.Sprintf("https://q1.qlogo.cn/g?b=qq&s=0&nk=%v", id)
}

// call runs action and returns its data. ZeroBot reports timeouts and
// transport failures as an empty response, so anything but an ok status
// is an error.
func call(ctx context.Context, caller Caller, action string, params zero.Params) (gjson.Result, error) {
	if err := ctx.Err(); err != nil {
		return gjson.Result{}, err
	}
	rsp := caller.CallAction(action, params)
	if rsp.RetCode != 0 || (rsp.Status != "ok" && rsp.Status != "async") {
		return gjson.Result{}, fmt.Errorf("%s failed with retcode %d: %s",
			action, rsp.RetCode, firstNonEmpty(rsp.Wording, rsp.Msg, rsp.Status, "no response"))
	}
	return rsp.Data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
