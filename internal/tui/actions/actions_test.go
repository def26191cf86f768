package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glabrego/relwin/internal/release"
)

type fakeService struct {
	releases []release.Release
	listErr  error
	setErr   error

	lastListDeadline time.Time
	lastSetDeadline  time.Time
	lastVersion      string
	listCalls        int
}

func (f *fakeService) ListReleases(ctx context.Context) ([]release.Release, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.lastListDeadline = dl
	}
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.releases, nil
}

func (f *fakeService) SetCurrent(ctx context.Context, version string) error {
	if dl, ok := ctx.Deadline(); ok {
		f.lastSetDeadline = dl
	}
	f.lastVersion = version
	return f.setErr
}

func TestReloadCmd(t *testing.T) {
	svc := &fakeService{releases: []release.Release{{Version: "v1.0.0"}}}
	msg := ReloadCmd(svc, "manual")()
	success, ok := msg.(ReloadSuccessMsg)
	if !ok {
		t.Fatalf("expected ReloadSuccessMsg, got %T", msg)
	}
	if success.Source != "manual" || len(success.Releases) != 1 {
		t.Fatalf("unexpected success payload: %+v", success)
	}
	if svc.lastListDeadline.IsZero() {
		t.Fatal("expected reload context deadline to be set")
	}
}

func TestSetCurrentCmd(t *testing.T) {
	svc := &fakeService{releases: []release.Release{{Version: "v1.0.0"}, {Version: "v1.1.0", Current: true}}}
	msg := SetCurrentCmd(svc, "v1.1.0")()
	success, ok := msg.(SetCurrentSuccessMsg)
	if !ok {
		t.Fatalf("expected SetCurrentSuccessMsg, got %T", msg)
	}
	if success.Version != "v1.1.0" || success.Status != "Current release: v1.1.0" {
		t.Fatalf("unexpected set current payload: %+v", success)
	}
	if len(success.Releases) != 2 || svc.listCalls != 1 {
		t.Fatalf("expected releases to be read back once, got %d releases and %d calls", len(success.Releases), svc.listCalls)
	}
	if svc.lastVersion != "v1.1.0" || svc.lastSetDeadline.IsZero() {
		t.Fatalf("unexpected service call: version=%q deadline=%v", svc.lastVersion, svc.lastSetDeadline)
	}
}

func TestActionErrors(t *testing.T) {
	svc := &fakeService{listErr: errors.New("list failed")}
	if _, ok := ReloadCmd(svc, "manual")().(ReloadErrorMsg); !ok {
		t.Fatal("expected ReloadErrorMsg")
	}
	if _, ok := SetCurrentCmd(svc, "v1")().(SetCurrentErrorMsg); !ok {
		t.Fatal("expected SetCurrentErrorMsg when read back fails")
	}

	svc = &fakeService{setErr: errors.New("not found")}
	if _, ok := SetCurrentCmd(svc, "v9")().(SetCurrentErrorMsg); !ok {
		t.Fatal("expected SetCurrentErrorMsg when marking fails")
	}
	if svc.listCalls != 0 {
		t.Fatalf("expected no read back after a failed mark, got %d calls", svc.listCalls)
	}
}

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("https://example.com",
		func(string) error { return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(OpenURLSuccessMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	if _, ok := msg.(OpenURLSuccessMsg); !ok {
		t.Fatalf("expected OpenURLSuccessMsg, got %T", msg)
	}
	msg = CopyURLCmd("https://example.com", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestPersistPreferencesCmd(t *testing.T) {
	if PersistPreferencesCmd(nil) != nil {
		t.Fatal("expected nil command without a saver")
	}
	if msg := PersistPreferencesCmd(func() error { return nil })(); msg != nil {
		t.Fatalf("expected no message on success, got %T", msg)
	}
	msg := PersistPreferencesCmd(func() error { return errors.New("disk full") })()
	if errMsg, ok := msg.(PreferenceSaveErrorMsg); !ok || errMsg.Err.Error() != "disk full" {
		t.Fatalf("expected PreferenceSaveErrorMsg, got %T %+v", msg, msg)
	}
}
