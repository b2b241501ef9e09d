package sync

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	syncFileOverride = filepath.Join(t.TempDir(), "failed_syncs.json")
	defer func() { syncFileOverride = "" }()

	Convey("Given queued failures", t, func() {
		So(QueueFailure("c1", content.Video, ActionView), ShouldBeNil)
		So(QueueFailure("c2", content.Audio, ActionShare), ShouldBeNil)

		Convey("They are readable back in order", func() {
			mutations := pendingMutations()
			So(mutations, ShouldHaveLength, 2)
			So(mutations[0].ContentID, ShouldEqual, "c1")
			So(mutations[0].Action, ShouldEqual, ActionView)
			So(mutations[1].ContentID, ShouldEqual, "c2")
			So(mutations[1].Kind, ShouldEqual, content.Audio)
		})

		Convey("The view queue hook appends records", func() {
			before := len(pendingMutations())
			ViewQueue{}.Enqueue("c3", content.Sermon)
			So(pendingMutations(), ShouldHaveLength, before+1)
		})
	})
}

func TestReconcileFailures(t *testing.T) {
	syncFileOverride = filepath.Join(t.TempDir(), "failed_syncs.json")
	defer func() { syncFileOverride = "" }()

	Convey("ReconcileFailures replays the queue in the background", t, func() {
		So(QueueFailure("c1", content.Video, ActionView), ShouldBeNil)
		So(QueueFailure("c2", content.Audio, ActionShare), ShouldBeNil)

		var views, shares int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/view"):
				atomic.AddInt64(&views, 1)
				fmt.Fprint(w, `{"success":true}`)
			case strings.HasSuffix(r.URL.Path, "/share"):
				atomic.AddInt64(&shares, 1)
				fmt.Fprint(w, `{"success":true,"shares":3}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		// The call must not block the caller; replay runs on its own goroutine
		// with backoff between requests.
		start := time.Now()
		ReconcileFailures(api.NewWithBase(srv.URL))
		So(time.Since(start), ShouldBeLessThan, 100*time.Millisecond)

		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if atomic.LoadInt64(&views) == 1 &&
				atomic.LoadInt64(&shares) == 1 &&
				len(pendingMutations()) == 0 {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}

		So(atomic.LoadInt64(&views), ShouldEqual, 1)
		So(atomic.LoadInt64(&shares), ShouldEqual, 1)
		So(pendingMutations(), ShouldBeEmpty)
	})
}
