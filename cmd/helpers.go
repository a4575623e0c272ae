// Package cmd implements the iconica subcommands.
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/config"
	"github.com/iconica/core/errors"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/state"
)

// openStores loads the runtime config and both persistent stores.
func openStores(cmd *cobra.Command) (config.Runtime, *state.Store, *library.Store, error) {
	rt, err := cli.LoadRuntime(cmd)
	if err != nil {
		return rt, nil, nil, err
	}

	store := state.NewStore(rt.DataDir)
	if err := store.Load(); err != nil {
		return rt, nil, nil, err
	}
	lib := library.NewStore(rt.DataDir)
	if err := lib.Load(); err != nil {
		return rt, nil, nil, err
	}
	return rt, store, lib, nil
}

// parseRef interprets a user-supplied icon argument: an emoji literal, a
// prefix:name glyph id, a library asset id or name, or an emoji
// shortcode like :fire:.
func parseRef(arg string, lib *library.Store) (icon.Ref, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return icon.Ref{}, errors.InvalidReference(arg, nil)
	}

	if r := []rune(arg)[0]; r > unicode.MaxASCII {
		return icon.Ref{Kind: icon.Emoji, Value: arg}, nil
	}

	if code := strings.TrimSuffix(strings.TrimPrefix(arg, ":"), ":"); code != arg {
		if e, ok := emoji.Default().ResolveShortcode(code); ok {
			return icon.Ref{Kind: icon.Emoji, Value: e.Character}, nil
		}
		return icon.Ref{}, errors.InvalidReference(arg, nil)
	}

	if _, ok := lib.GetByID(arg); ok {
		return icon.Ref{Kind: icon.Asset, Value: arg}, nil
	}
	for _, a := range lib.GetAll() {
		if a.Name == arg {
			return icon.Ref{Kind: icon.Asset, Value: a.ID}, nil
		}
	}

	if _, _, err := icon.SplitGlyphID(arg); err == nil {
		return icon.Ref{Kind: icon.Glyph, Value: arg}, nil
	}
	return icon.Ref{}, errors.InvalidReference(arg, nil)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
