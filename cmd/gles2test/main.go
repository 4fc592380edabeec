// Command gles2test opens a fullscreen OpenGL ES 2.0 window and draws a
// rotating square, one marker per touch point and, where an accelerometer is
// available, one gauge per axis.
package main

import (
	"flag"

	"github.com/golang/glog"

	"gles2test/internal/config"
	"gles2test/internal/demo"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Set("alsologtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatalf("[app]%v", err)
	}
	if err := demo.Run(cfg); err != nil {
		glog.Fatalf("[app]%v", err)
	}
}
