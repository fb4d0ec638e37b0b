package cli

import (
	"context"
	"fmt"
)

func (a *App) notifications(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "read":
			return a.markNotificationRead(ctx, args[1:])
		case "list":
			args = args[1:]
		}
	}
	fs := newFlagSet(a, "notifications")
	unread := fs.Bool("unread", false, "only show unread notifications")
	if err := parse(fs, args); err != nil {
		return err
	}

	items, err := a.API.ListNotifications(ctx)
	if err != nil {
		return err
	}
	if *unread {
		kept := items[:0]
		for _, n := range items {
			if !n.IsRead {
				kept = append(kept, n)
			}
		}
		items = kept
	}
	if a.json {
		return a.printJSON(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.Out, "No notifications.")
		return nil
	}

	t := newTable(a.Out, "ID", "", "DATE", "MESSAGE")
	for _, n := range items {
		mark := "*"
		if n.IsRead {
			mark = ""
		}
		date := ""
		if !n.CreatedAt.IsZero() {
			date = n.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		t.row(formatID(n.ID), mark, date, n.Message)
	}
	return t.flush()
}

func (a *App) markNotificationRead(ctx context.Context, args []string) error {
	id, err := parseID(args, "notification")
	if err != nil {
		return err
	}
	if err := a.API.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Marked notification %d as read.\n", id)
	return nil
}
