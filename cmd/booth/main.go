/*
DESCRIPTION
  booth is a photo booth kiosk service. It waits on shutter triggers, captures
  a still, processes it for a thermal printer and prints it on a branded
  receipt. Behaviour is controlled by a JSON configuration file which is
  watched for changes.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package main is the photo booth kiosk service.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	_ "github.com/kidoman/embd/host/rpi" // GPIO host driver for the button trigger.
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/mattstief/photobooth/booth"
	"github.com/mattstief/photobooth/booth/config"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logPath      = "/var/log/photobooth/photobooth.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Misc constants.
const (
	pkg               = "booth: "
	defaultConfigPath = "/etc/photobooth.json"
)

func main() {
	showVersion := flag.Bool("version", false, "show version")
	configPath := flag.String("config", defaultConfigPath, "path of the JSON configuration file")
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	// Create logger that we call methods on to log, which in turn writes to
	// the lumberjack logger and stdout (picked up by journald under systemd).
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stdout), logSuppress)

	log.Info("starting booth", "version", version)

	b, err := booth.New(config.Config{Logger: log})
	if err != nil {
		log.Fatal(pkg+"could not initialise booth", "error", err.Error())
	}

	vars, err := config.LoadFile(*configPath)
	if err != nil {
		log.Warning(pkg+"could not load config file, using defaults", "path", *configPath, "error", err.Error())
	} else {
		err = b.Update(vars)
		if err != nil {
			log.Warning(pkg+"could not apply config file", "error", err.Error())
		}
	}

	err = b.Start()
	if err != nil {
		log.Fatal(pkg+"could not start booth", "error", err.Error())
	}

	// Let systemd know we're up.
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warning(pkg+"could not notify systemd", "error", err.Error())
	}
	log.Debug(pkg+"systemd notified", "sent", sent)

	// Reconfigure on the fly when the config file changes.
	closeWatch, err := config.Watch(*configPath, log, func(vars map[string]string) {
		log.Info(pkg + "config file changed, reconfiguring")
		err := b.Update(vars)
		if err != nil {
			log.Warning(pkg+"could not update booth", "error", err.Error())
			return
		}
		err = b.Start()
		if err != nil {
			log.Error(pkg+"could not restart booth after reconfiguration", "error", err.Error())
		}
	})
	if err != nil {
		log.Warning(pkg+"could not watch config file", "error", err.Error())
	} else {
		defer closeWatch()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info(pkg+"received signal, shutting down", "signal", s.String())
	b.Stop()
}
