package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	intconfig "routeadmin/internal/config"
	"routeadmin/internal/data"
	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
	"routeadmin/internal/routesapi"
	"routeadmin/internal/services"

	"github.com/docker/go-units"
	"golang.org/x/term"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: routesctl <list|delete|cities> [flags]")
	fmt.Fprintln(os.Stderr, "  list   [-from CITY] [-to CITY]")
	fmt.Fprintln(os.Stderr, "  delete [-from CITY] [-to CITY] [-yes] ID")
	fmt.Fprintln(os.Stderr, "  cities [-sort]")
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "cities" {
		os.Exit(runCities(args, os.Stdout))
	}

	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.APIURL == "" {
		log.Fatalf("API_URL is required")
	}
	l := services.NewRouteList(routesapi.New(env.APIURL, routesapi.WithTimeout(env.APITimeout)))
	ctx := context.Background()

	switch cmd {
	case "list":
		os.Exit(runList(ctx, l, args, os.Stdout))
	case "delete":
		os.Exit(runDelete(ctx, l, args, os.Stdin, os.Stdout))
	default:
		usage()
		os.Exit(2)
	}
}

func runCities(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("cities", flag.ContinueOnError)
	sorted := fs.Bool("sort", false, "alphabetical order instead of the selector order")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cities := data.Cities()
	if *sorted {
		cities = data.SortedCities()
	}
	for _, c := range cities {
		fmt.Fprintln(out, c)
	}
	return 0
}

func filterFlags(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	from := fs.String("from", "", "origin city (empty: any)")
	to := fs.String("to", "", "destination city (empty: any)")
	return fs, from, to
}

func checkCity(name string) error {
	if name != "" && !data.IsKnownCity(name) {
		return fmt.Errorf("unknown city %q, see routesctl cities", name)
	}
	return nil
}

func load(ctx context.Context, l *services.RouteList, from, to string, out io.Writer) bool {
	start := time.Now()
	err := l.SetFilter(ctx, from, to)
	flushNotices(l)
	if err != nil {
		return false
	}
	s := l.Snapshot()
	fmt.Fprintf(out, "%d routes (%s)\n\n", len(s.Routes), units.HumanDuration(time.Since(start)))
	return true
}

func runList(ctx context.Context, l *services.RouteList, args []string, out io.Writer) int {
	fs, from, to := filterFlags("list")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	for _, c := range []string{*from, *to} {
		if err := checkCity(c); err != nil {
			log.Print(err)
			return 2
		}
	}
	if !load(ctx, l, *from, *to, out) {
		return 1
	}
	printRoutes(out, l.Snapshot().Routes)
	return 0
}

func runDelete(ctx context.Context, l *services.RouteList, args []string, in *os.File, out io.Writer) int {
	fs, from, to := filterFlags("delete")
	yes := fs.Bool("yes", false, "skip the confirmation question")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		usage()
		return 2
	}
	id := models.RouteID(strings.TrimSpace(fs.Arg(0)))

	if !load(ctx, l, *from, *to, out) {
		return 1
	}
	if !listed(l.Snapshot().Routes, id) {
		log.Printf("route #%s is not in the current list", id)
		return 1
	}

	l.RequestDelete(id)
	reader := bufio.NewReader(in)
	if !*yes && !askYes(reader, out, fmt.Sprintf("Вы уверены что хотите удалить маршрут #%s ? [y/N] ", id)) {
		l.Cancel()
		fmt.Fprintln(out, "cancelled")
		return 0
	}

	pass, err := readPassword(in, reader, out)
	if err != nil {
		l.Cancel()
		log.Printf("read password: %v", err)
		return 1
	}
	l.SetPassword(pass)

	outcome, _ := l.Confirm(ctx)
	flushNotices(l)
	printRoutes(out, l.Snapshot().Routes)
	if outcome != domain.OutcomeSuccess {
		return 1
	}
	fmt.Fprintf(out, "route #%s deleted\n", id)
	return 0
}

func listed(routes []models.Route, id models.RouteID) bool {
	for _, r := range routes {
		if r.ID == id {
			return true
		}
	}
	return false
}

func askYes(r *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

func readPassword(in *os.File, r *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Пароль: ")
	if term.IsTerminal(int(in.Fd())) {
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		return string(b), err
	}
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func flushNotices(l *services.RouteList) {
	for _, n := range l.TakeNotices() {
		fmt.Fprintln(os.Stderr, n.Message)
	}
}
