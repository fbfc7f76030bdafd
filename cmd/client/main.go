package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-microblog-client/auth"
	"github.com/jrsteele09/go-microblog-client/internal/config"
	"github.com/jrsteele09/go-microblog-client/microposts"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/token/filerepo"
	"github.com/jrsteele09/go-microblog-client/token/memrepo"
	"github.com/jrsteele09/go-microblog-client/transport"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("client failed")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	email := flag.String("email", "", "email to log in with")
	password := flag.String("password", "", "password to log in with")
	remember := flag.Bool("remember", false, "persist the session across restarts")
	page := flag.Int("page", 1, "feed page to fetch")
	logout := flag.Bool("logout", false, "log out and exit")
	flag.Parse()

	c := config.New()
	configureLogging(c)
	displayAppname(c.GetAppName())

	tokens, err := token.NewManager(filerepo.New(c.GetTokenFilePath()), memrepo.New())
	if err != nil {
		return errors.Wrap(err, "[run] token manager")
	}

	client, err := transport.New(c.GetBaseURL(), tokens,
		transport.WithTimeout(c.GetRequestTimeout()),
		transport.WithMaxRetries(c.GetMaxRetries()),
	)
	if err != nil {
		return errors.Wrap(err, "[run] transport client")
	}

	session, err := auth.NewService(client, tokens)
	if err != nil {
		return errors.Wrap(err, "[run] auth service")
	}

	ctx := context.Background()
	if err := session.CheckAuthStatus(ctx); err != nil {
		return errors.Wrap(err, "[run] auth check")
	}

	if *logout {
		if err := session.Logout(ctx); err != nil {
			return errors.Wrap(err, "[run] logout")
		}
		log.Info().Msg("logged out")
		return nil
	}

	if state := session.State(); !state.LoggedIn && *email != "" {
		user, err := session.Login(ctx, auth.Credentials{Email: *email, Password: *password, RememberMe: *remember})
		if err != nil {
			return errors.Wrap(err, "[run] login")
		}
		log.Info().Str("user", user.Name).Msg("logged in")
	}

	state := session.State()
	if !state.LoggedIn {
		log.Info().Msg("not logged in, pass -email and -password to log in")
		return nil
	}

	return printFeed(ctx, client, *page)
}

func printFeed(ctx context.Context, client *transport.Client, page int) error {
	feed, err := microposts.New(client).Feed(ctx, page)
	if err != nil {
		return errors.Wrap(err, "[printFeed] fetch feed")
	}

	fmt.Printf("Feed: %d posts, following %d, followers %d\n\n", feed.TotalCount, feed.Following, feed.Followers)
	for _, post := range feed.FeedItems {
		fmt.Printf("%s  %s\n  %s\n\n", post.Timestamp, post.UserName, post.Content)
	}
	return nil
}

func configureLogging(c config.Config) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
