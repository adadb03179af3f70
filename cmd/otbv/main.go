package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"

	otbv "github.com/eceannmor/otbv-go"

	"github.com/docopt/docopt-go"
	. "github.com/stevegt/goadapt"
)

func init() {
	var debug string
	debug = os.Getenv("DEBUG")
	if debug == "1" {
		log.SetLevel(log.DebugLevel)
	}
	logrus.SetReportCaller(true)
	formatter := &logrus.TextFormatter{
		CallerPrettyfier: caller(),
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyFile: "caller",
		},
	}
	formatter.TimestampFormat = "15:04:05.999999999"
	logrus.SetFormatter(formatter)
}

// caller returns string presentation of log caller which is formatted as
// `/path/to/file.go:line_number`. e.g. `/internal/app/api.go:25`
func caller() func(*runtime.Frame) (function string, file string) {
	return func(f *runtime.Frame) (function string, file string) {
		p, _ := os.Getwd()
		return "", fmt.Sprintf("%s:%d gid %d", strings.TrimPrefix(f.File, p), f.Line, getGID())
	}
}

func getGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

type Opts struct {
	Pack     bool
	Unpack   bool
	Info     bool
	Watch    bool
	Rawfile  string
	Otbvfile string
	Dir      string
	X        string
	Y        string
	Z        string
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {

	usage := `otbv

Usage:
  otbv pack <rawfile> <x> <y> <z> <otbvfile>
  otbv unpack <otbvfile> <rawfile>
  otbv info <otbvfile>
  otbv watch <dir>

Options:
  -h --help     Show this screen.
  --version     Show version.
`
	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.0")
	var opts Opts
	err := o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}
	log.Debug(opts)

	switch true {
	case opts.Pack:
		x, y, z, err := resolution(opts.X, opts.Y, opts.Z)
		if err != nil {
			log.Error(err)
			return 22
		}
		err = pack(opts.Rawfile, x, y, z, opts.Otbvfile)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Unpack:
		err := unpack(opts.Otbvfile, opts.Rawfile)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Info:
		err := info(opts.Otbvfile)
		if err != nil {
			log.Error(err)
			return 42
		}
	case opts.Watch:
		err := watch(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
	}
	return 0
}

func resolution(xa, ya, za string) (x, y, z int, err error) {
	defer Return(&err)
	x, err = strconv.Atoi(xa)
	Ck(err)
	y, err = strconv.Atoi(ya)
	Ck(err)
	z, err = strconv.Atoi(za)
	Ck(err)
	return
}

// pack reads a raw volume file (one byte per voxel, row-major with x
// slowest and z fastest, any nonzero byte is a true voxel) and saves
// it as an OTBV container.
func pack(rawfile string, x, y, z int, otbvfile string) (err error) {
	defer Return(&err)
	buf, err := os.ReadFile(rawfile)
	Ck(err)
	flat := make([]bool, len(buf))
	for i, b := range buf {
		flat[i] = b != 0
	}
	err = otbv.SaveFlat(otbvfile, flat, x, y, z)
	Ck(err)
	return
}

// unpack loads an OTBV container and writes the volume back out as a
// raw file, one byte per voxel.
func unpack(otbvfile, rawfile string) (err error) {
	defer Return(&err)
	vol, err := otbv.Load(otbvfile)
	Ck(err)
	x, y, z := vol.Resolution()
	buf := make([]byte, 0, vol.Size())
	for xi := 0; xi < x; xi++ {
		for yi := 0; yi < y; yi++ {
			for zi := 0; zi < z; zi++ {
				var b byte
				if vol.At(xi, yi, zi) {
					b = 1
				}
				buf = append(buf, b)
			}
		}
	}
	err = os.WriteFile(rawfile, buf, 0644)
	Ck(err)
	return
}

// info prints the container header without decoding the body.
func info(otbvfile string) (err error) {
	defer Return(&err)
	fh, err := os.Open(otbvfile)
	Ck(err)
	defer fh.Close()
	hdr, err := otbv.ReadHeader(fh)
	Ck(err)
	fmt.Printf("resolution: %d %d %d\n", hdr.XRes, hdr.YRes, hdr.ZRes)
	fmt.Printf("padded: %t\n", hdr.Padded)
	fmt.Printf("pad bits: %d\n", hdr.PadBits)
	fmt.Printf("data bytes: %d\n", hdr.DataBytes)
	return
}

// watch packs every *.raw file that appears in dir, taking the
// resolution from a sibling *.shape file containing "X Y Z".  Runs
// until SIGINT or SIGTERM.
func watch(dir string) (err error) {
	defer Return(&err)

	watcher, err := fsnotify.NewWatcher()
	Ck(err)
	defer watcher.Close()
	err = watcher.Add(dir)
	Ck(err)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".raw") {
				continue
			}
			if err := packRaw(ev.Name); err != nil {
				log.Error(err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error(werr)
		case <-sig:
			return nil
		}
	}
}

// packRaw packs rawfile using the resolution in the sibling .shape
// file, writing the container next to it.
func packRaw(rawfile string) (err error) {
	defer Return(&err)
	base := strings.TrimSuffix(rawfile, ".raw")
	shape, err := os.ReadFile(base + ".shape")
	Ck(err)
	var x, y, z int
	_, err = fmt.Sscanf(string(shape), "%d %d %d", &x, &y, &z)
	Ck(err)
	err = pack(rawfile, x, y, z, base+".otbv")
	Ck(err)
	log.Debugf("packed %s", filepath.Base(rawfile))
	return
}
