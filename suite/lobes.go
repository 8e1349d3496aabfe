package suite

import (
	"fmt"
	"strings"

	"github.com/kardolus/conscience/clock"
	"github.com/kardolus/conscience/config"
	"github.com/kardolus/conscience/keyboard"
	"github.com/kardolus/conscience/toolkit"
)

// Names the built-in lobes remember their bindings under.
const (
	BindingMainloop    = "mainloop"
	BindingAfter       = "after"
	BindingAfterCancel = "after_cancel"
	BindingBind        = "bind"
	BindingPhotoImage  = "photo_image"
	bindingDialog      = "dialog."
)

// DialogBinding names the binding of one dialog, e.g. DialogBinding("showinfo").
func DialogBinding(dialog string) string {
	return bindingDialog + dialog
}

// Builtin returns the lobe called name.
func Builtin(name string, cfg config.Config) (Lobe, error) {
	switch strings.ToLower(name) {
	case "mainloop":
		return Mainloop{}, nil
	case "after":
		return After{}, nil
	case "bind":
		return Bind{}, nil
	case "images":
		return Images{}, nil
	case "dialogs":
		return Dialogs{Answer: cfg.DialogAnswer}, nil
	default:
		return nil, fmt.Errorf("unknown lobe %q", name)
	}
}

// base gives lobes no-op hooks to override.
type base struct{}

func (base) OnLoad(*Suite) error { return nil }

func (base) OnStart(*Scenario) error { return nil }

func (base) FailureMessage(*Scenario, string) (string, bool) { return "", false }

// Mainloop makes the event loop return immediately so the program under
// test hands control back to the scenario.
type Mainloop struct{ base }

func (Mainloop) Name() string { return "mainloop" }

func (Mainloop) OnStart(sc *Scenario) error {
	b, err := sc.Registry.Vacant(sc.Methods, "Mainloop")
	if err != nil {
		return err
	}
	sc.Remember(BindingMainloop, b)
	return nil
}

// After schedules the program's deferred callbacks on the scenario's
// virtual clock.
type After struct{ base }

func (After) Name() string { return "after" }

func (After) OnStart(sc *Scenario) error {
	after, err := sc.Registry.Relay(sc.Methods, "After", func(w *toolkit.Widget, ms int, fn func()) string {
		if ms < 0 {
			ms = 0
		}
		id, err := sc.Clock.Schedule(ms, fn)
		if err != nil {
			panic(err)
		}
		return id.String()
	})
	if err != nil {
		return err
	}
	sc.Remember(BindingAfter, after)

	cancel, err := sc.Registry.Relay(sc.Methods, "AfterCancel", func(w *toolkit.Widget, id string) {
		if parsed, ok := clock.ParseID(id); ok {
			sc.Clock.Cancel(parsed)
		}
	})
	if err != nil {
		return err
	}
	sc.Remember(BindingAfterCancel, cancel)
	return nil
}

func (After) FailureMessage(sc *Scenario, step string) (string, bool) {
	pending := sc.Clock.Pending()
	if len(pending) == 0 {
		return "", false
	}

	parts := make([]string, len(pending))
	for i, p := range pending {
		parts[i] = fmt.Sprintf("%s at %dms", p.ID, p.Due)
	}
	return fmt.Sprintf("%d callback(s) still scheduled at %dms: %s",
		len(pending), sc.Clock.Elapsed(), strings.Join(parts, ", ")), true
}

// Bind records the program's key bindings without installing them;
// Scenario.Press replays them.
type Bind struct{ base }

func (Bind) Name() string { return "bind" }

func (Bind) OnStart(sc *Scenario) error {
	b, err := sc.Registry.Log(sc.Methods, "Bind")
	if err != nil {
		return err
	}
	sc.Remember(BindingBind, b)
	return nil
}

func (Bind) FailureMessage(sc *Scenario, step string) (string, bool) {
	b, ok := sc.Binding(BindingBind)
	if !ok {
		return "", false
	}

	table, err := keyboard.BuildTable(registrations(b.Calls()))
	if err != nil {
		return "key bindings are malformed: " + err.Error(), true
	}
	sequences := table.Sequences()
	if len(sequences) == 0 {
		return "no key bindings were registered", true
	}
	return "bound keys: " + strings.Join(sequences, ", "), true
}

// Images remembers what every loaded image depicts, named after its file,
// so canvas items can be found by image.
type Images struct{ base }

func (Images) Name() string { return "images" }

func (Images) OnStart(sc *Scenario) error {
	original := sc.Methods.PhotoImage
	b, err := sc.Registry.Relay(sc.Methods, "PhotoImage", func(root *toolkit.Tk, file string) string {
		name := original(root, file)
		root.Images().Register(name, toolkit.ImageKind(file))
		return name
	})
	if err != nil {
		return err
	}
	sc.Remember(BindingPhotoImage, b)
	return nil
}

func (Images) FailureMessage(sc *Scenario, step string) (string, bool) {
	images := sc.Window.Images()
	names := images.Names()
	if len(names) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		kind, _ := images.Lookup(name)
		parts = append(parts, name+"="+kind)
	}
	return "images: " + strings.Join(parts, ", "), true
}

// Dialogs keeps modal dialogs from blocking: notices are dismissed and
// yes/no questions get Answer.
type Dialogs struct {
	base
	Answer bool
}

func (Dialogs) Name() string { return "dialogs" }

func (d Dialogs) OnStart(sc *Scenario) error {
	for _, dialog := range []string{toolkit.DialogShowInfo, toolkit.DialogShowWarning, toolkit.DialogShowError} {
		dialog := dialog
		b, err := sc.Registry.Relay(toolkit.Dialogs, dialog, func(title, message string) string {
			sc.Transcript.Appendf("%s: %s: %s", dialog, title, message)
			return "ok"
		})
		if err != nil {
			return err
		}
		sc.Remember(DialogBinding(dialog), b)
	}

	b, err := sc.Registry.Relay(toolkit.Dialogs, toolkit.DialogAskYesNo, func(title, message string) bool {
		sc.Transcript.Appendf("%s: %s: %s -> %t", toolkit.DialogAskYesNo, title, message, d.Answer)
		return d.Answer
	})
	if err != nil {
		return err
	}
	sc.Remember(DialogBinding(toolkit.DialogAskYesNo), b)
	return nil
}

func (Dialogs) FailureMessage(sc *Scenario, step string) (string, bool) {
	var shown []string
	for _, dialog := range toolkit.Dialogs.Members() {
		b, ok := sc.Binding(DialogBinding(dialog))
		if !ok {
			continue
		}
		for _, call := range b.Calls() {
			shown = append(shown, dialog+call.String())
		}
	}
	if len(shown) == 0 {
		return "", false
	}
	return "dialogs shown: " + strings.Join(shown, ", "), true
}

var (
	_ Lobe = Mainloop{}
	_ Lobe = After{}
	_ Lobe = Bind{}
	_ Lobe = Images{}
	_ Lobe = Dialogs{}
)
