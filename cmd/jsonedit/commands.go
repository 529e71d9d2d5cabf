package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsonedit").
		WithSynopsis("jsonedit [opts] command [opts]").
		WithDescription("jsonedit reads and edits JSON documents by locator, e.g. $[\"customer\"][0].").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsoneditMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			ShowCommand(cfg),
			PatchCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "get").
		WithAliases("g").
		WithSynopsis("get <locator> [file]").
		WithDescription("print the value at a locator").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "set").
		WithAliases("s").
		WithSynopsis("set [-w] [-d] <locator> <json> [file]").
		WithDescription("replace the value at a locator, creating missing containers").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func ShowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShowConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "show").
		WithSynopsis("show <locator> [file]").
		WithDescription("show the attributes of the node at a locator as they appear in the editor").
		WithRun(func(cc *cli.Context, args []string) error {
			return show(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "patch").
		WithAliases("p").
		WithSynopsis("patch <locator> <json> [file]").
		WithDescription("print the JSON Patch equivalent to a set").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
