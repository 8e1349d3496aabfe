package toolkit

import (
	"go.uber.org/zap"

	"github.com/kardolus/conscience/intercept"
)

const (
	DialogShowInfo    = "showinfo"
	DialogShowWarning = "showwarning"
	DialogShowError   = "showerror"
	DialogAskYesNo    = "askyesno"
)

// Dialogs holds the modal dialog functions. With no display to show them
// on, the real ones log the message and answer as if dismissed.
var Dialogs = NewDialogs()

func NewDialogs() *intercept.Namespace {
	return intercept.NewNamespace("messagebox").
		Define(DialogShowInfo, notice(DialogShowInfo)).
		Define(DialogShowWarning, notice(DialogShowWarning)).
		Define(DialogShowError, notice(DialogShowError)).
		Define(DialogAskYesNo, func(title, message string) bool {
			zap.L().Warn("dialog shown without a display",
				zap.String("dialog", DialogAskYesNo),
				zap.String("title", title),
				zap.String("message", message),
			)
			return false
		})
}

func ShowInfo(title, message string) string {
	return show(DialogShowInfo, title, message)
}

func ShowWarning(title, message string) string {
	return show(DialogShowWarning, title, message)
}

func ShowError(title, message string) string {
	return show(DialogShowError, title, message)
}

func AskYesNo(title, message string) bool {
	fn, err := intercept.Lookup[func(string, string) bool](Dialogs, DialogAskYesNo)
	if err != nil {
		zap.L().Error("dialog unavailable", zap.Error(err))
		return false
	}
	return fn(title, message)
}

func show(dialog, title, message string) string {
	fn, err := intercept.Lookup[func(string, string) string](Dialogs, dialog)
	if err != nil {
		zap.L().Error("dialog unavailable", zap.Error(err))
		return ""
	}
	return fn(title, message)
}

func notice(dialog string) func(title, message string) string {
	return func(title, message string) string {
		zap.L().Warn("dialog shown without a display",
			zap.String("dialog", dialog),
			zap.String("title", title),
			zap.String("message", message),
		)
		return "ok"
	}
}
