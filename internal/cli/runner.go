// Package cli dispatches subcommands and prints the non-interactive
// views. The interactive editor lives in internal/tui.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/previdlabs/ppp/internal/config"
	"github.com/previdlabs/ppp/internal/export"
	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/internal/store/casestore"
	"github.com/previdlabs/ppp/internal/tui"
	"github.com/previdlabs/ppp/internal/ui"
	"github.com/previdlabs/ppp/pkg/log"
)

// Options carry everything a subcommand needs.
type Options struct {
	Cfg    *config.Config
	Theme  ui.Theme
	Logger log.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doInteractive(opt)

	case "list":
		return doList(opt)

	case "show":
		if len(a) != 1 {
			opt.Theme.Fail("usage: ppp show <id>")
			return 2
		}
		return doShow(a[0], opt)

	case "export":
		if len(a) < 1 || len(a) > 2 {
			opt.Theme.Fail("usage: ppp export <id> [pendentes|entregues|completo]")
			return 2
		}
		variant := "pendentes"
		if len(a) == 2 {
			variant = a[1]
		}
		return doExport(a[0], variant, opt)

	case "rm":
		if len(a) != 1 {
			opt.Theme.Fail("usage: ppp rm <id>")
			return 2
		}
		return doRemove(a[0], opt)
	}

	opt.Theme.Fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`ppp - checklist de documentos previdenciários

Usage:
  ppp [flags] <subcommand> [args]

Subcommands:
  ls                 Open the interactive editor
  list               List saved atendimentos with progress
  show <id>          Show one atendimento's checklist
  export <id> [pendentes|entregues|completo]
                     Print the formatted document list
  rm <id>            Delete an atendimento

Ids may be abbreviated to any unique prefix.

Examples:
  ppp ls
  ppp list
  ppp export 7c0a completo
`)
}

func openStore(opt Options) (*casestore.Store, int) {
	s, err := casestore.Open(opt.Cfg.CasesPath(), opt.Logger)
	if err != nil {
		opt.Theme.Fail("open store: " + err.Error())
		return nil, 1
	}
	return s, 0
}

// resolveID expands an id prefix to a full case id. The visible part of
// an id is the token after "atendimento-", so prefixes match on both.
func resolveID(s *casestore.Store, arg string) (string, error) {
	var matches []string
	for _, a := range s.All() {
		if a.ID == arg {
			return a.ID, nil
		}
		short := strings.TrimPrefix(a.ID, "atendimento-")
		if strings.HasPrefix(a.ID, arg) || strings.HasPrefix(short, arg) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no atendimento matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

func doInteractive(opt Options) int {
	s, code := openStore(opt)
	if code != 0 {
		return code
	}
	if err := tui.Run(s, opt.Cfg, opt.Theme, opt.Logger); err != nil {
		opt.Theme.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	s, code := openStore(opt)
	if code != 0 {
		return code
	}
	cases := s.All()
	if len(cases) == 0 {
		fmt.Println(opt.Theme.Muted.Render("nenhum atendimento salvo"))
		return 0
	}
	for _, a := range cases {
		delivered, pending := model.Stats(a.ChecklistItems)
		total := delivered + pending
		short := strings.TrimPrefix(a.ID, "atendimento-")
		if len(short) > 8 {
			short = short[:8]
		}
		name := a.ClientName
		if name == "" {
			name = "(sem nome)"
		}
		fmt.Printf("%s  %s  %s\n",
			opt.Theme.Accent.Render(short),
			opt.Theme.Title.Render(name),
			opt.Theme.Muted.Render(a.BenefitName),
		)
		fmt.Printf("          %s  %s\n",
			ui.ProgressBar(delivered, total, 20),
			opt.Theme.Muted.Render(a.UpdatedAt.Format("02/01/2006 15:04")),
		)
	}
	return 0
}

func doShow(arg string, opt Options) int {
	s, code := openStore(opt)
	if code != 0 {
		return code
	}
	id, err := resolveID(s, arg)
	if err != nil {
		opt.Theme.Fail(err.Error())
		return 1
	}
	a, _ := s.Get(id)

	delivered, pending := model.Stats(a.ChecklistItems)
	lines := []string{
		opt.Theme.Title.Render(a.ClientName) + "  " + opt.Theme.Muted.Render(a.ClientCPF),
		opt.Theme.Muted.Render(a.BenefitName),
		fmt.Sprintf("%s %d  %s %d",
			opt.Theme.Success.Render("✔ entregues"), delivered,
			opt.Theme.Pending.Render("• pendentes"), pending),
		"",
	}
	for _, it := range a.ChecklistItems {
		text := it.Text
		if it.Checked {
			text = opt.Theme.Done.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s %s", opt.Theme.Muted.Render(opt.Theme.Box(it.Checked)), text))
	}
	fmt.Println(opt.Theme.Panel(lines))
	return 0
}

func doExport(arg, variant string, opt Options) int {
	s, code := openStore(opt)
	if code != 0 {
		return code
	}
	id, err := resolveID(s, arg)
	if err != nil {
		opt.Theme.Fail(err.Error())
		return 1
	}
	a, _ := s.Get(id)

	var text string
	switch variant {
	case "pendentes":
		text = export.PendingText(a.ChecklistItems, a.ClientName, a.BenefitName)
	case "entregues":
		text = export.DeliveredText(a.ChecklistItems, a.ClientName, a.BenefitName)
	case "completo":
		text = export.CompleteText(a.ChecklistItems, a.ClientName, a.BenefitName)
	default:
		opt.Theme.Fail("export: unknown variant: " + variant)
		return 2
	}
	fmt.Println(text)
	return 0
}

func doRemove(arg string, opt Options) int {
	s, code := openStore(opt)
	if code != 0 {
		return code
	}
	id, err := resolveID(s, arg)
	if err != nil {
		opt.Theme.Fail(err.Error())
		return 1
	}
	if err := s.Delete(id); err != nil {
		opt.Theme.Fail("rm: " + err.Error())
		return 1
	}
	opt.Logger.Infof(context.Background(), "deleted %s", id)
	opt.Theme.OK("removed")
	return 0
}
