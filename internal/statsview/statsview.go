// Package statsview offers a local HTTP server with runtime statistics of
// the interpreter process, backed by github.com/go-echarts/statsview.
//
// After launch, graphical statistics are viewable at:
//
//	localhost:18066/debug/statsview
//
// And standard Go pprof statistics are available at:
//
//	localhost:18066/debug/pprof/
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address of the statistics server.
const Address = "localhost:18066"

const url = "/debug/statsview"

// Launch starts the statistics server in a new goroutine.
func Launch(logger *log.Logger) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()

	logger.Info("Stats server available", log.String("url", "http://"+Address+url))
}
