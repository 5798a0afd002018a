// Command sats encodes the built-in sample values with any registered
// format backend, or prints their derived schemas.
//
//	sats -list
//	sats -format bsatn -sample event
//	sats -format yaml -sample state
//	sats -sample event -schema
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/clockworklabs/sats-go/pkg/sats/bsatn"
	_ "github.com/clockworklabs/sats-go/pkg/sats/flatkv"
	_ "github.com/clockworklabs/sats-go/pkg/sats/yamlenc"

	"github.com/clockworklabs/sats-go/pkg/sats/schema"
	"github.com/clockworklabs/sats-go/pkg/sats/ser"
	"github.com/clockworklabs/sats-go/tests/satstest"
)

func main() {
	var (
		formatName = flag.String("format", "bsatn", "output format (see -list)")
		sampleName = flag.String("sample", "event", "sample value to encode (see -list)")
		showSchema = flag.Bool("schema", false, "print the sample's derived schema instead of encoding")
		listAll    = flag.Bool("list", false, "list registered formats and samples")
		forceHex   = flag.Bool("hex", false, "always print output as hex")
	)
	flag.Parse()

	if *listAll {
		fmt.Println("formats:", strings.Join(ser.Formats(), " "))
		fmt.Println("samples:", strings.Join(satstest.Names(), " "))
		return
	}

	sample, ok := satstest.ByName(*sampleName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown sample %q; try -list\n", *sampleName)
		os.Exit(1)
	}

	if *showSchema {
		typ, err := schema.DeriveFor(sample.Value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot derive schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(typ)
		return
	}

	format, ok := ser.LookupFormat(*formatName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format %q; try -list\n", *formatName)
		os.Exit(1)
	}

	out, err := format.Marshal(sample.Value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}

	if *forceHex || !printable(out) {
		fmt.Println(hex.EncodeToString(out))
		return
	}
	os.Stdout.Write(out)
}

// printable reports whether the bytes are plain text.
func printable(b []byte) bool {
	for _, c := range b {
		if c == '\n' || c == '\t' {
			continue
		}
		if c < 0x20 || c >= 0x7F {
			return false
		}
	}
	return true
}
