package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/campusops/canvas-gateway-api/pkg/core"

	"github.com/spf13/cobra"
)

var (
	cursor    string
	perPage   int
	accountID string

	courseName string
	courseCode string
)

const commandTimeout = 15 * time.Second

var authorizeCmd = &cobra.Command{
	Use:   "authorize [state]",
	Short: "Print the Canvas authorization URL",
	Long:  "Print the URL a user must visit to grant access; the redirect carries back an authorization code.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthorize,
}

var exchangeCmd = &cobra.Command{
	Use:   "exchange [code]",
	Short: "Exchange an authorization code for an access token",
	Args:  cobra.ExactArgs(1),
	RunE:  runExchange,
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses",
	RunE:  runCourses,
}

var courseCmd = &cobra.Command{
	Use:   "course [id]",
	Short: "Show a single course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourse,
}

var createCourseCmd = &cobra.Command{
	Use:   "create-course",
	Short: "Create a course under an account",
	RunE:  runCreateCourse,
}

var deleteCourseCmd = &cobra.Command{
	Use:   "delete-course [id]",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteCourse,
}

var modulesCmd = &cobra.Command{
	Use:   "modules [course-id]",
	Short: "List modules of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runModules,
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts visible to the caller",
	RunE:  runAccounts,
}

func init() {
	for _, c := range []*cobra.Command{coursesCmd, modulesCmd, accountsCmd} {
		c.Flags().StringVar(&cursor, "cursor", "", "Opaque pagination cursor from a previous page")
		c.Flags().IntVar(&perPage, "per-page", 0, "Page size hint")
	}

	coursesCmd.Flags().StringVar(&accountID, "account", "", "List courses of this account instead of the current user")

	createCourseCmd.Flags().StringVar(&accountID, "account", "", "Account to create the course under (required)")
	createCourseCmd.Flags().StringVar(&courseName, "name", "", "Course name (required)")
	createCourseCmd.Flags().StringVar(&courseCode, "code", "", "Course code")

	rootCmd.AddCommand(authorizeCmd)
	rootCmd.AddCommand(exchangeCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(createCourseCmd)
	rootCmd.AddCommand(deleteCourseCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(accountsCmd)
}

func newService() (canvas.Service, error) {
	_ = core.LoadEnv()

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return canvas.New(&cfg.Canvas, canvas.Options{
		Logger:  core.NewLoggerTo(cfg, os.Stderr),
		Timeout: commandTimeout,
	})
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func listOpts() canvas.ListOptions {
	return canvas.ListOptions{Cursor: cursor, PerPage: perPage}
}

func printPage(items any, next string) error {
	if err := printJSON(items); err != nil {
		return err
	}
	if next != "" {
		fmt.Fprintf(os.Stderr, "next page: --cursor %q\n", next)
	}
	return nil
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	fmt.Println(svc.AuthCodeURL(args[0]))
	return nil
}

func runExchange(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	tok, err := svc.ExchangeAuthorizationCode(ctx, args[0])
	if err != nil {
		return err
	}

	// The token goes to stdout so it can be captured into
	// CANVAS_ACCESS_TOKEN for subsequent commands.
	return printJSON(tok)
}

func runCourses(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	var (
		courses []canvas.Course
		next    string
	)
	if accountID != "" {
		courses, next, err = svc.ListAccountCourses(ctx, accountID, listOpts())
	} else {
		courses, next, err = svc.ListCourses(ctx, listOpts())
	}
	if err != nil {
		return err
	}
	return printPage(courses, next)
}

func runCourse(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	course, err := svc.GetCourse(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(course)
}

func runCreateCourse(cmd *cobra.Command, args []string) error {
	if accountID == "" || courseName == "" {
		return fmt.Errorf("--account and --name are required")
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	course, err := svc.CreateCourse(ctx, accountID, canvas.CourseFields{
		Name:       courseName,
		CourseCode: courseCode,
	})
	if err != nil {
		return err
	}
	return printJSON(course)
}

func runDeleteCourse(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	ack, err := svc.DeleteCourse(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(ack)
}

func runModules(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	modules, next, err := svc.ListModules(ctx, args[0], listOpts())
	if err != nil {
		return err
	}
	return printPage(modules, next)
}

func runAccounts(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	accounts, next, err := svc.ListAccounts(ctx, listOpts())
	if err != nil {
		return err
	}
	return printPage(accounts, next)
}
