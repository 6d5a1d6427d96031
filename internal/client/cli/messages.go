package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophinbox/internal/client/models"
)

func (a *App) send(ctx context.Context, args []string) error {
	token, err := a.session()
	if err != nil {
		return err
	}

	var m models.NewMessage
	if len(args) > 0 {
		m.Receiver = args[0]
	} else if m.Receiver, err = getSimpleText(a.reader, "Enter receiver", a.out); err != nil {
		return err
	}

	if m.Subject, err = getSimpleText(a.reader, "Enter subject", a.out); err != nil {
		return err
	}
	if m.Body, err = GetMultiline(a.reader, "Enter body", a.out); err != nil {
		return err
	}

	id, err := a.api.Send(ctx, token, m)
	if err != nil {
		return err
	}
	a.printf("Message sent (id %d)", id)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	token, err := a.session()
	if err != nil {
		return err
	}
	msgs, err := a.api.ListAll(ctx, token)
	if err != nil {
		return err
	}
	a.printList(msgs)
	return nil
}

func (a *App) unread(ctx context.Context, _ []string) error {
	token, err := a.session()
	if err != nil {
		return err
	}
	msgs, err := a.api.ListUnread(ctx, token)
	if err != nil {
		return err
	}
	a.printList(msgs)
	return nil
}

func (a *App) printList(msgs []models.Message) {
	for _, m := range msgs {
		a.printf("%s", m.Summary())
	}
	a.printf("%d message(s)", len(msgs))
}

func (a *App) read(ctx context.Context, args []string) error {
	token, err := a.session()
	if err != nil {
		return err
	}

	var msg *models.Message
	if len(args) == 0 {
		msg, err = a.api.Next(ctx, token)
	} else {
		id, perr := parseID(args[0])
		if perr != nil {
			return perr
		}
		msg, err = a.api.Get(ctx, token, id)
	}
	if err != nil {
		return err
	}

	a.printf("%s", msg.String())
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: delete <id>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	token, err := a.session()
	if err != nil {
		return err
	}

	if err := a.api.Delete(ctx, token, id); err != nil {
		return err
	}
	a.printf("Message %d deleted", id)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: message id must be a positive integer, got %q", ErrUsage, s)
	}
	return id, nil
}
