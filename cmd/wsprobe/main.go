// Command wsprobe is a small websocket client used to smoke-test the
// realtime endpoint: it connects with a JWT, prints every event received,
// and exits on interrupt.
package main

import (
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8480", "server host:port")
	token := flag.String("token", "", "JWT obtained from /api/auth/login")
	flag.Parse()

	if *token == "" {
		log.Fatal("-token is required")
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/api/ws",
		RawQuery: "token=" + url.QueryEscape(*token),
	}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("event: %s", message)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("ping: %v", err)
				return
			}
		case <-interrupt:
			log.Println("interrupt, closing connection")
			err := conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Printf("write close: %v", err)
				return
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
