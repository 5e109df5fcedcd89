package board_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	"boardsight/board"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MondayClient", func() {
	var (
		srv      *httptest.Server
		handler  http.HandlerFunc
		lastReq  *http.Request
		lastBody map[string]any
		client   *board.MondayClient
	)

	BeforeEach(func() {
		handler = nil
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastReq = r
			raw, _ := io.ReadAll(r.Body)
			lastBody = nil
			_ = json.Unmarshal(raw, &lastBody)
			handler(w, r)
		}))
		DeferCleanup(srv.Close)

		client = board.NewMondayClient(board.MondayOptions{
			URL:       srv.URL,
			Token:     "secret-token",
			ItemLimit: 25,
		}, nil)
	})

	It("sends an authenticated GraphQL query and maps items", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"boards":[{"items_page":{"items":[
				{"id":"11","name":"Acme","column_values":[
					{"id":"c1","text":"Mining","value":null,"column":{"title":"Sector","type":"text"}},
					{"id":"c2","text":null,"value":null,"column":{"title":"Deal Status","type":"status"}}
				]}
			]}}]}}`))
		}

		records, err := client.FetchRecords(context.Background(), "123")
		Expect(err).NotTo(HaveOccurred())

		Expect(lastReq.Method).To(Equal(http.MethodPost))
		Expect(lastReq.Header.Get("Authorization")).To(Equal("Bearer secret-token"))
		Expect(lastReq.Header.Get("API-Version")).To(Equal(board.DefaultMondayAPIVersion))
		Expect(lastBody["query"]).To(ContainSubstring("items_page(limit: $limit)"))
		Expect(lastBody["variables"]).To(HaveKeyWithValue("boardId", ConsistOf("123")))
		Expect(lastBody["variables"]).To(HaveKeyWithValue("limit", BeNumerically("==", 25)))

		Expect(records).To(HaveLen(1))
		Expect(records[0].ID).To(Equal("11"))
		Expect(records[0].Name).To(Equal("Acme"))
		Expect(records[0].Column("sector")).To(Equal("Mining"))
		Expect(records[0].Column("Deal Status")).To(BeEmpty())
	})

	It("returns an empty slice when the board reports no data", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"boards":[]}}`))
		}
		records, err := client.FetchRecords(context.Background(), "123")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("fails on a GraphQL errors payload", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"Not Authenticated"}]}`))
		}
		_, err := client.FetchRecords(context.Background(), "123")
		var apiErr *board.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Not Authenticated"))
	})

	It("fails on a non-2xx status", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("unauthorized"))
		}
		_, err := client.FetchRecords(context.Background(), "123")
		var statusErr *board.StatusError
		Expect(errors.As(err, &statusErr)).To(BeTrue())
		Expect(statusErr.StatusCode).To(Equal(http.StatusUnauthorized))
	})
})
