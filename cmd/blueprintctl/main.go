package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/blueprint-archi/blueprint-go/pkg/blueprint"
	"github.com/blueprint-archi/blueprint-go/pkg/endpoints"
	"github.com/blueprint-archi/blueprint-go/pkg/forms"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
	"github.com/blueprint-archi/blueprint-go/pkg/realtime"
	"github.com/blueprint-archi/blueprint-go/pkg/views"
)

const AppVersion = "1.0.0"

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

const usage = `Blueprint terminal client.

Usage:
    blueprintctl login <email> <password>
    blueprintctl logout
    blueprintctl feed [--page=<page>] [--limit=<limit>]
    blueprintctl like <post_id>
    blueprintctl post <content>
    blueprintctl watch
    blueprintctl health

Options:
    -h --help          Show this screen.
    --version          Show version.
    --page=<page>      Page to load [default: 1].
    --limit=<limit>    Page size [default: 20].`

func main() {
	// Booting screen
	fmt.Println(color.CyanString(" ____  _                       _       _\n| __ )| |_   _  ___ _ __  _ __(_)_ __ | |_\n|  _ \\| | | | |/ _ \\ '_ \\| '__| | '_ \\| __|\n| |_) | | |_| |  __/ |_) | |  | | | | | |_\n|____/|_|\\__,_|\\___| .__/|_|  |_|_| |_|\\__|\n                   |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiCyan).Add(color.Bold).Sprintf("Blueprint"), AppVersion)
	fmt.Printf("The portfolio network for architects\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("No settings file found, using the defaults.")
	}

	client, err := blueprint.New(blueprint.LoadConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when building the client.")
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Session.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Msg("An error occurred when restoring the session, keeping the cached identity.")
	}

	opts, err := docopt.ParseArgs(usage, os.Args[1:], AppVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when parsing arguments.")
	}

	switch {
	case command(opts, "login"):
		login(ctx, client, opts)
	case command(opts, "logout"):
		client.Session.Logout()
	case command(opts, "feed"):
		feed(ctx, client, opts)
	case command(opts, "like"):
		like(ctx, client, opts)
	case command(opts, "post"):
		post(ctx, client, opts)
	case command(opts, "watch"):
		watch(ctx, client)
	case command(opts, "health"):
		health(ctx, client)
	}
}

func command(opts docopt.Opts, name string) bool {
	enabled, _ := opts.Bool(name)
	return enabled
}

func login(ctx context.Context, client *blueprint.Client, opts docopt.Opts) {
	email, _ := opts.String("<email>")
	password, _ := opts.String("<password>")

	form := forms.Login{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid credentials.")
	}

	user, err := client.Session.Login(ctx, form.Credentials())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when logging in.")
	}
	fmt.Printf("Welcome back, %s (@%s)!\n", user.FullName, user.Username)
}

func feed(ctx context.Context, client *blueprint.Client, opts docopt.Opts) {
	page, _ := opts.Int("--page")
	limit, _ := opts.Int("--limit")

	result, err := endpoints.Fetch(ctx, client.Endpoints, endpoints.Feed(page, limit))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading the feed.")
	}

	viewer := client.Viewer()
	for _, item := range result.Data {
		client.TrackPost(item)
		view := views.NewPostView(item, viewer)
		liked := " "
		if view.Liked {
			liked = color.RedString("♥")
		}
		fmt.Printf("%s %s · @%s · %s\n  %s\n  %s\n",
			liked,
			color.New(color.Bold).Sprint(view.Author.Name),
			view.Author.Username,
			color.HiBlackString(view.Timestamp),
			view.Content,
			color.HiBlackString("%d likes · %d comments · %s", view.LikeCount, view.CommentCount, view.ID),
		)
	}
	fmt.Printf("page %d/%d\n", result.Pagination.Page, result.Pagination.TotalPages)
}

func like(ctx context.Context, client *blueprint.Client, opts docopt.Opts) {
	id, _ := opts.String("<post_id>")

	// seed the coordinator with the server truth before toggling
	current, err := endpoints.Fetch(ctx, client.Endpoints, endpoints.PostByID(id))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading the post.")
	}
	client.TrackPost(current.Data)

	state := client.ToggleLike(ctx, models.EntityTypePost, id)
	fmt.Printf("liked=%v count=%d (settling...)\n", state.Liked, state.Count)

	update := <-client.Likes.Updates()
	if update.Err != nil {
		log.Error().Err(update.Err).Msg("The like did not stick, rolled back.")
		return
	}
	fmt.Println("done")
}

func post(ctx context.Context, client *blueprint.Client, opts docopt.Opts) {
	content, _ := opts.String("<content>")

	form := forms.PostForm{Content: content}
	if err := form.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid post.")
	}

	created, err := endpoints.Mutate(ctx, client.Endpoints, endpoints.CreatePost(), form.Draft())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when creating the post.")
	}
	fmt.Printf("posted %s\n", created.Data.ID)
}

func watch(ctx context.Context, client *blueprint.Client) {
	if !client.Session.LoggedIn() {
		log.Fatal().Msg("Log in before watching.")
	}

	bridge := client.Connect(ctx)
	bridge.On(realtime.EventNotification, func(event realtime.Event) {
		var notification models.Notification
		if err := event.Decode(&notification); err != nil {
			return
		}
		view := views.NewNotificationView(notification, client.Viewer())
		fmt.Printf("%s %s\n", color.YellowString("[notification]"), view.Message)
	})
	bridge.On(realtime.EventMessage, func(event realtime.Event) {
		var message models.Message
		if err := event.Decode(&message); err != nil {
			return
		}
		fmt.Printf("%s %s\n", color.GreenString("[message]"), message.Body)
	})

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 5m", client.Cache.Sweep)
	quartz.AddFunc("@every 1m", func() {
		result, err := endpoints.Fetch(ctx, client.Endpoints, endpoints.Notifications(1, 20))
		if err != nil {
			log.Warn().Err(err).Msg("An error occurred when polling notifications...")
			return
		}
		unread := 0
		for _, item := range result.Data {
			if !item.Read {
				unread++
			}
		}
		if unread > 0 {
			fmt.Printf("%s %d unread notifications\n", color.YellowString("[inbox]"), unread)
		}
	})
	quartz.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}

func health(ctx context.Context, client *blueprint.Client) {
	result, err := endpoints.Fetch(ctx, client.Endpoints, endpoints.Health())
	if err != nil {
		log.Fatal().Err(err).Msg("The platform is unreachable.")
	}
	fmt.Printf("status: %s\n", result.Data.Status)
}
