package main

import (
	"econ-lab/domain"
	"econ-lab/repositories"
	"econ-lab/services"
	"econ-lab/settings"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const usage = `usage: settings [flags] <command> [args]

commands:
  check                 load and validate the settings
  sessions              list session configs
  rooms                 list rooms
  fields                list extra participant and session fields
  show <name>           print a session config with its defaults applied
  payoff <name> <n>     convert a payoff with the config's currency settings
  snapshot <name>       record the resolved session config
  history <name>        list recorded snapshots of a session config
  token <username>      issue a REST token, password read from ADMIN_LOGIN_PASSWORD
`

const tokenTTL = 24 * time.Hour

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.Red.Sprint("Fatal error:"), err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }
	settingsFile := fs.String("settings", config.SettingsFile, "YAML settings file (built-in settings when empty)")
	secretsFile := fs.String("secrets", config.SecretsFile, "dotenv file holding the secrets")
	dbPath := fs.String("db", config.BadgerFilepath, "path of the snapshot database")
	noColour := fs.Bool("no-color", !config.Colours, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	color.Enable = !*noColour

	log := logs.GetLoggerFromString(config.LogLevel)

	s, err := settings.Load(settings.Options{
		File:        *settingsFile,
		SecretsFile: *secretsFile,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	command := fs.Arg(0)
	rest := fs.Args()
	if len(rest) > 0 {
		rest = rest[1:]
	}

	switch command {
	case "", "check":
		fmt.Fprintf(out, "%s %d session configs, %d rooms, auth level %q\n",
			color.Green.Sprint("OK"), len(s.SessionConfigs()), len(s.Rooms()), s.AuthLevel())
		return nil
	case "sessions":
		printSessions(out, s.SessionConfigs())
		return nil
	case "rooms":
		printRooms(out, s.Rooms())
		return nil
	case "fields":
		printFields(out, s.ParticipantFields(), s.SessionFields())
		return nil
	case "show":
		name, err := argument(rest, 0, "session config name")
		if err != nil {
			return err
		}
		cfg, err := s.SessionConfig(name)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "payoff":
		return printPayoff(out, s, rest)
	case "token":
		username, err := argument(rest, 0, "username")
		if err != nil {
			return err
		}
		svc := services.NewAdminService(s.Admin(), s.Signer(), tokenTTL, log)
		token, err := svc.Login(username, os.Getenv("ADMIN_LOGIN_PASSWORD"))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)
		return nil
	case "snapshot", "history":
		name, err := argument(rest, 0, "session config name")
		if err != nil {
			return err
		}
		cfg, err := s.SessionConfig(name)
		if err != nil {
			return err
		}
		db, err := badger.Open(badger.DefaultOptions(*dbPath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Debug("Closing BadgerDB...")
			_ = db.Close()
		}()
		repository := repositories.NewSnapshotRepository(db, log)
		if command == "snapshot" {
			return saveSnapshot(out, log, repository, cfg)
		}
		return printHistory(out, repository, name)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func argument(args []string, i int, what string) (string, error) {
	if len(args) <= i || strings.TrimSpace(args[i]) == "" {
		return "", fmt.Errorf("missing %s", what)
	}
	return args[i], nil
}

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func printSessions(out io.Writer, configs []domain.SessionConfig) {
	table := newTable(out, []string{"Name", "Display name", "Apps", "Demo participants", "Per point", "Fee"})
	for _, c := range configs {
		table.Append([]string{
			c.Name,
			c.DisplayName,
			strings.Join(c.AppSequence, " > "),
			strconv.Itoa(c.NumDemoParticipants),
			strconv.FormatFloat(c.RealWorldCurrencyPerPoint, 'f', -1, 64),
			strconv.FormatFloat(c.ParticipationFee, 'f', 2, 64),
		})
	}
	table.Render()
}

func printRooms(out io.Writer, rooms []domain.Room) {
	table := newTable(out, []string{"Name", "Display name", "Labels"})
	for _, r := range rooms {
		labels := "-"
		if r.HasParticipantLabels() {
			labels = r.ParticipantLabelFile
		}
		table.Append([]string{r.Name, r.DisplayName, labels})
	}
	table.Render()
}

func printFields(out io.Writer, participant, session domain.FieldSet) {
	table := newTable(out, []string{"Scope", "Field"})
	for _, f := range participant {
		table.Append([]string{"participant", f})
	}
	for _, f := range session {
		table.Append([]string{"session", f})
	}
	table.Render()
}

func printPayoff(out io.Writer, s *settings.Settings, args []string) error {
	name, err := argument(args, 0, "session config name")
	if err != nil {
		return err
	}
	raw, err := argument(args, 1, "payoff")
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid payoff %q: %w", raw, err)
	}
	converter, err := s.Converter(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "payoff: %s\nreal world: %s\nwith participation fee: %s\n",
		converter.FormatPayoff(amount),
		converter.FormatMoney(converter.ToRealWorld(amount)),
		converter.FormatMoney(converter.PayoffPlusParticipationFee(amount)))
	return nil
}

func saveSnapshot(out io.Writer, log *slog.Logger, repository repositories.ISnapshotRepository, cfg domain.SessionConfig) error {
	id, err := repository.SaveSnapshot(cfg, time.Now())
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	log.Info("Snapshot stored", "config", cfg.Name, "id", id)
	fmt.Fprintf(out, "%s %s\n", color.Green.Sprint("Snapshot"), id)
	return nil
}

func printHistory(out io.Writer, repository repositories.ISnapshotRepository, name string) error {
	snapshots, err := repository.ListSnapshots(name, nil)
	if err != nil {
		return err
	}
	table := newTable(out, []string{"ID", "At", "Apps", "Per point", "Fee"})
	for _, snap := range snapshots {
		table.Append([]string{
			snap.ID.String(),
			snap.At.Format(time.RFC3339),
			strings.Join(snap.Config.AppSequence, " > "),
			strconv.FormatFloat(snap.Config.RealWorldCurrencyPerPoint, 'f', -1, 64),
			strconv.FormatFloat(snap.Config.ParticipationFee, 'f', 2, 64),
		})
	}
	table.Render()
	return nil
}
