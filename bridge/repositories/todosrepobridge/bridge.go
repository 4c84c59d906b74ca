// Package todosrepobridge exposes the todo repository over HTTP. It parses
// and validates the wire shapes, translates repository errors into transport
// errors, and keeps the core types off the wire.
package todosrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskboard/taskboard/bridge/scaffolding/errs"
	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/infrastructure/web"
)

// bridge provides HTTP handlers for Todo operations.
type bridge struct {
	todoRepository *todosrepo.Repository
}

func newBridge(todoRepository *todosrepo.Repository) *bridge {
	return &bridge{
		todoRepository: todoRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	todos, err := b.todoRepository.List(ctx, filter)
	if err != nil {
		return translateError(err)
	}

	return web.NewJSONResponse(MarshalListToBridge(todos))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	todo, err := b.todoRepository.GetByID(ctx, todoID)
	if err != nil {
		return translateError(err)
	}

	return web.NewJSONResponse(MarshalToBridge(todo))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTodoInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	create, err := MarshalCreateToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	todo, err := b.todoRepository.Create(ctx, create)
	if err != nil {
		return translateError(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(todo), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	var input UpdateTodoInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	update, err := MarshalUpdateToRepository(input)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	todo, err := b.todoRepository.Update(ctx, todoID, update)
	if err != nil {
		return translateError(err)
	}

	return web.NewJSONResponse(MarshalToBridge(todo))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	todoID := web.Param(r, "todo_id")

	if err := b.todoRepository.Delete(ctx, todoID); err != nil {
		return translateError(err)
	}

	return web.NewJSONResponse(SuccessResponse{Success: true})
}

// httpStatusList reports the valid status values so clients can build
// columns and pickers without hardcoding them.
func (b *bridge) httpStatusList(ctx context.Context, r *http.Request) web.Encoder {
	return web.NewJSONResponse(todosrepo.Statuses)
}

// httpBoard returns todos grouped into board columns, one per status, each
// column keeping store order.
func (b *bridge) httpBoard(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	todos, err := b.todoRepository.List(ctx, filter)
	if err != nil {
		return translateError(err)
	}

	return web.NewJSONResponse(MarshalBoardToBridge(todos))
}

// translateError maps repository failures to transport errors. Validation
// failures become 400s with the field detail, absence becomes the canonical
// 404 body, anything else is internal.
func translateError(err error) web.Encoder {
	var fe todosrepo.FieldErrors
	if errors.As(err, &fe) {
		return errs.New(errs.InvalidArgument, fe)
	}

	if errors.Is(err, todosrepo.ErrTodoNotFound) {
		return errs.Newf(errs.NotFound, "Todo not found")
	}

	return errs.New(errs.Internal, err)
}
