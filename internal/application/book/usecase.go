package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/book"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/metrics"
	"github.com/xiebiao/bookapi/pkg/tracing"
)

const tracerName = "bookapi/application/book"

// UseCase 图书用例
// 负责结果判定（不存在、冲突、校验失败），HTTP层只做绑定和状态码映射
// 查询见list_books.go，增删改见manage_book.go
type UseCase struct {
	repo      book.Repository
	tx        book.TxManager
	publisher book.EventPublisher
	log       *zap.Logger
}

// NewUseCase 创建图书用例
func NewUseCase(repo book.Repository, tx book.TxManager, publisher book.EventPublisher, log *zap.Logger) *UseCase {
	if publisher == nil {
		publisher = book.NopPublisher{}
	}
	return &UseCase{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
		log:       log,
	}
}

// startOp 开启Span并返回结束函数
// 结束函数记录指标，服务端错误额外写error日志
func (uc *UseCase) startOp(ctx context.Context, op string, id uint) (context.Context, func(err error)) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase."+op)
	if id != 0 {
		span.SetAttributes(attribute.Int64("book.id", int64(id)))
	}
	start := time.Now()

	return ctx, func(err error) {
		metrics.RecordBookOperation(op, serverError(err), time.Since(start).Seconds())
		if serverError(err) != nil {
			uc.log.Error("图书操作失败",
				zap.String("op", op),
				zap.Uint("book_id", id),
				zap.String("trace_id", tracing.ExtractTraceID(ctx)),
				zap.Error(err),
			)
			tracing.EndSpan(span, err)
			return
		}
		span.End()
	}
}

// publish 发布事件，失败只记录日志
func (uc *UseCase) publish(ctx context.Context, t book.EventType, b *book.Book) {
	if err := uc.publisher.Publish(ctx, book.NewEvent(t, b)); err != nil {
		uc.log.Warn("发布图书事件失败", zap.String("event", string(t)), zap.Uint("book_id", b.ID), zap.Error(err))
	}
}

// serverError 只保留会映射为5xx的错误
func serverError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.HTTPStatus(apperrors.GetAppError(err).Code) >= 500 {
		return err
	}
	return nil
}
