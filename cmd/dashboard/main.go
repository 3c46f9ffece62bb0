package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"client_tracker_backend/internal/dashboard"
	"client_tracker_backend/internal/models"
	"client_tracker_backend/pkg/apiclient"
	"client_tracker_backend/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func printHelp() {
	fmt.Println(`Usage:
  dashboard [-api URL] list   [-search TERM]
  dashboard [-api URL] create -name NAME -contact CONTACT -due YYYY-MM-DD -amount N [-email E] [-address A]
  dashboard [-api URL] toggle -id N
  dashboard [-api URL] delete -id N [-yes]
  dashboard [-api URL] health`)
}

func main() {
	_ = godotenv.Load()
	utils.InitLogger("development", utils.Getenv("LOG_LEVEL", "warn"))

	global := flag.NewFlagSet("dashboard", flag.ExitOnError)
	apiURL := global.String("api", utils.Getenv("API_URL", apiclient.DefaultBaseURL), "API base URL")
	timeout := global.Duration("timeout", 15*time.Second, "request timeout")
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := apiclient.New(*apiURL, &http.Client{})
	if err := run(ctx, api, args[0], args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api *apiclient.Client, sub string, args []string, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	confirm := func(prompt string) bool {
		fmt.Fprintf(out, "%s [s/N] ", prompt)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "s" || answer == "sim" || answer == "y" || answer == "yes"
	}
	ctrl := dashboard.NewController(api, confirm)

	switch sub {
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		search := fs.String("search", "", "filter by name, contact or email")
		_ = fs.Parse(args)
		render(out, ctrl.Search(ctx, *search))

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		name := fs.String("name", "", "client name")
		contact := fs.String("contact", "", "phone or other contact")
		due := fs.String("due", "", "due date YYYY-MM-DD")
		amount := fs.String("amount", "", "amount owed")
		email := fs.String("email", "", "email (optional)")
		address := fs.String("address", "", "address (optional)")
		_ = fs.Parse(args)

		value, err := decimal.NewFromString(strings.Replace(*amount, ",", ".", 1))
		if err != nil {
			return fmt.Errorf("amount must be a number: %q", *amount)
		}
		ctrl.ToggleCreateForm()
		ctrl.SetDraft(dashboard.Draft{Name: *name, Contact: *contact, DueDate: *due, Amount: value, Email: *email, Address: *address})
		if err := ctrl.Create(ctx); err != nil {
			return describe(err)
		}
		render(out, ctrl.State())

	case "toggle":
		fs := flag.NewFlagSet("toggle", flag.ExitOnError)
		id := fs.Int64("id", 0, "client id")
		_ = fs.Parse(args)

		client, err := api.GetClient(ctx, *id)
		if err != nil {
			return describe(err)
		}
		if err := ctrl.ToggleStatus(ctx, *client); err != nil {
			return describe(err)
		}
		render(out, ctrl.State())

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "client id")
		yes := fs.Bool("yes", false, "skip the confirmation prompt")
		_ = fs.Parse(args)

		if *yes {
			ctrl = dashboard.NewController(api, func(string) bool { return true })
		}
		deleted, err := ctrl.Delete(ctx, *id)
		if err != nil {
			return describe(err)
		}
		if !deleted {
			fmt.Fprintln(out, "Cancelado.")
			return nil
		}
		render(out, ctrl.State())

	case "health":
		health, err := api.HealthCheck(ctx)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "%s (%s, v%s) em %s\n", health.Status, health.Environment, health.Version, health.Timestamp)

	default:
		printHelp()
		return fmt.Errorf("unknown command %q", sub)
	}
	return nil
}

// describe adds the API's own message to a failed action.
func describe(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%v: %s", err, apiErr.Message)
	}
	return err
}

func render(out io.Writer, s dashboard.State) {
	if s.Error != "" {
		fmt.Fprintln(out, "Erro de Conexão")
		fmt.Fprintln(out, s.Error)
		return
	}

	fmt.Fprintln(out, "Gestão de Clientes")
	fmt.Fprintln(out)
	if s.Stats != nil {
		fmt.Fprintf(out, "Total de Clientes: %d\n", s.Stats.Clients.Total)
		fmt.Fprintf(out, "Valor Total:       %s\n", dashboard.FormatCurrency(s.Stats.Amounts.Total))
		fmt.Fprintf(out, "Pendentes:         %d (%s)\n", s.Stats.Clients.Pending, dashboard.FormatCurrency(s.Stats.Amounts.Pending))
		fmt.Fprintf(out, "Vencidos:          %d (%s)\n", s.Stats.Clients.Overdue, dashboard.FormatCurrency(s.Stats.Amounts.Overdue))
		fmt.Fprintln(out)
	}

	if len(s.Clients) == 0 {
		fmt.Fprintln(out, "Nenhum cliente encontrado.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tCONTATO\tVENCIMENTO\tVALOR\tSTATUS\tATUALIZADO")
	for _, c := range s.Clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, contactLine(c), dashboard.FormatDate(c.DueDate), dashboard.FormatCurrency(c.Amount),
			dashboard.StatusLabel(c.Status), dashboard.FormatDateTime(c.UpdatedAt, time.Local))
	}
	_ = tw.Flush()
}

func contactLine(c models.Client) string {
	if c.Email != nil {
		return c.Contact + " / " + *c.Email
	}
	return c.Contact
}
