// The consumer listener is the receiving side of the artifact channel: a
// long-lived websocket server that reassembles chunked archives pushed by
// the provider. Run it next to the consumer's connector.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"cords_connector/internal/transfer"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  8192,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func main() {
	addr := flag.String("addr", ":8765", "listen address for incoming transfers")
	dir := flag.String("dir", ".", "directory to store received artifacts in")
	flag.Parse()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		path, err := transfer.Receive(conn, *dir)
		if err != nil {
			log.Printf("⚠️ Transfer from %s failed: %v", r.RemoteAddr, err)
			return
		}
		log.Printf("✅ Received artifact %s from %s", path, r.RemoteAddr)
	})

	log.Printf("🚀 CORDS artifact receiver listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("❌ Listener stopped: %v", err)
	}
}
