package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/useraccounts/internal/common"
)

// App is the interactive REPL. It keeps the session token and user id from
// the last successful login.
type App struct {
	client *Client
	out    io.Writer
	in     *bufio.Reader

	token  string
	userID string
}

func NewApp(client *Client) *App {
	return &App{
		client: client,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.userID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userID)
}

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to the user accounts CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "uacli %s> ", a.getStatus())

		line, err := a.in.ReadString('\n')
		if err != nil {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: users, user <id>, ping, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, ping, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "users":
			a.listUsers(ctx)
		case "user":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "usage: user <id>")
				continue
			}
			a.getUser(ctx, args[0])
		case "ping":
			a.ping(ctx)
		case "logout":
			a.token = ""
			a.userID = ""
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
	}
}

func (a *App) register(ctx context.Context) {

	firstName, err := GetSimpleText(a.in, "Enter first name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	lastName, err := GetSimpleText(a.in, "Enter last name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	repeat, err := GetPassword("Repeat password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(repeat)

	user, err := a.client.Register(ctx, firstName, lastName, email, password, repeat)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintf(a.out, "Success! User id: %s\n", user.UserID)
}

func (a *App) login(ctx context.Context) {

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	token, userID, err := a.client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	a.token = token
	a.userID = userID

	fmt.Fprintln(a.out, "Success!")
}

func (a *App) listUsers(ctx context.Context) {

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "please login first")
		return
	}

	users, err := a.client.ListUsers(ctx, a.token)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	for _, u := range users {
		fmt.Fprintf(a.out, "%s  %s %s  <%s>\n", u.UserID, u.FirstName, u.LastName, u.Email)
	}
	fmt.Fprintf(a.out, "%d user(s)\n", len(users))
}

func (a *App) getUser(ctx context.Context, userID string) {

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "please login first")
		return
	}

	u, err := a.client.GetUser(ctx, a.token, userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintf(a.out, "%s  %s %s  <%s>\n", u.UserID, u.FirstName, u.LastName, u.Email)
}

func (a *App) ping(ctx context.Context) {
	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "OK")
}
