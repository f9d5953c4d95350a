package live

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// StreamHandler serves GET /v1/stream: it upgrades to a websocket, builds a
// Directory and Projector for the requested filter, and pushes every
// snapshot as a JSON message until the client disconnects. Disconnecting
// disposes both subscriptions.
type StreamHandler struct {
	Hub       *Hub
	Storage   *storage.Storage
	Log       *logrus.Logger
	ResultCap int

	upgrader websocket.Upgrader
}

func NewStreamHandler(hub *Hub, store *storage.Storage, log *logrus.Logger, resultCap int) *StreamHandler {
	return &StreamHandler{
		Hub:       hub,
		Storage:   store,
		Log:       log,
		ResultCap: resultCap,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

type streamSnapshot struct {
	Transactions []ProjectedTransaction `json:"transactions"`
}

// streamWriteTimeout bounds a single websocket write. A client that stops
// draining its connection gets disconnected instead of holding the write.
const streamWriteTimeout = 10 * time.Second

// snapshotQueue hands the connection's writer goroutine the newest pending
// snapshot. push never blocks: an undelivered older snapshot is dropped,
// which is sound because every snapshot is a full replacement. This is what
// keeps the operator's commit notifications independent of client I/O.
type snapshotQueue struct {
	ch chan []ProjectedTransaction
}

func newSnapshotQueue() *snapshotQueue {
	return &snapshotQueue{ch: make(chan []ProjectedTransaction, 1)}
}

func (q *snapshotQueue) push(snapshot []ProjectedTransaction) {
	for {
		select {
		case q.ch <- snapshot:
			return
		default:
		}
		// Slot taken: evict the stale snapshot and retry.
		select {
		case <-q.ch:
		default:
		}
	}
}

func (q *snapshotQueue) close() {
	close(q.ch)
}

// parseStreamFilter builds a Filter from request query parameters. Dates are
// accepted as YYYY-MM-DD; amounts as decimal strings.
func parseStreamFilter(query url.Values, resultCap int) (transaction.Filter, error) {
	filter := transaction.Filter{
		Type:  transaction.TypeAll,
		Limit: resultCap,
	}

	ownerID, err := uuid.FromString(query.Get("userId"))
	if err != nil {
		return filter, errors.New("stream: invalid or missing userId")
	}
	filter.OwnerID = ownerID

	switch t := query.Get("type"); t {
	case "", string(transaction.TypeAll):
	case string(transaction.TypeIncome):
		filter.Type = transaction.TypeIncome
	case string(transaction.TypeExpenses):
		filter.Type = transaction.TypeExpenses
	default:
		return filter, errors.New("stream: invalid type")
	}

	if raw := query.Get("startDate"); raw != "" {
		start, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, errors.New("stream: invalid startDate")
		}
		filter.StartDate = &start
	}
	if raw := query.Get("endDate"); raw != "" {
		end, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, errors.New("stream: invalid endDate")
		}
		filter.EndDate = &end
	}

	if raw := query.Get("minAmount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("stream: invalid minAmount")
		}
		filter.MinAmount = &min
	}
	if raw := query.Get("maxAmount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("stream: invalid maxAmount")
		}
		filter.MaxAmount = &max
	}

	if raw := query.Get("categoryId"); raw != "" {
		categoryID, err := uuid.FromString(raw)
		if err != nil {
			return filter, errors.New("stream: invalid categoryId")
		}
		filter.CategoryID = categoryID
	}

	return filter, nil
}

func (h *StreamHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("stream: method not GET")
	}

	filter, err := parseStreamFilter(req.URL.Query(), h.ResultCap)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	logData.AddData("userId", filter.OwnerID.String())

	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Snapshots arrive from the handler goroutine (initial refresh) and from
	// operator workers via the hub. Delivery goes through a coalescing queue
	// and a dedicated writer goroutine so a stalled client can never block a
	// hub notification, and with it the operator's write path.
	queue := newSnapshotQueue()
	defer queue.close()

	go func() {
		for snapshot := range queue.ch {
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(streamSnapshot{Transactions: snapshot}); err != nil {
				h.Log.WithError(err).Debug("StreamHandler.write")
				// Unblocks the read loop below, which disposes the
				// subscriptions.
				conn.Close()
				return
			}
		}
	}()

	directory := NewDirectory(req.Context(), h.Hub, h.Storage.Categories, filter.OwnerID, h.Log)
	defer directory.Close()

	projector := NewProjector(
		req.Context(),
		h.Hub,
		h.Storage.Transactions,
		directory,
		filter,
		queue.push,
		func(err error) {
			h.Log.WithError(err).Error("StreamHandler.projection")
		},
		h.Log,
	)
	defer projector.Close()

	// Block until the client goes away. Inbound messages are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
