package application

import "context"

type Sender interface {
	Send(ctx context.Context, recipient, subject, html string) error
}
