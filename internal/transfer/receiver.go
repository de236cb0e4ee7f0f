package transfer

import (
	"os"
	"path/filepath"

	"github.com/gorilla/websocket"
)

// Receive reads chunk frames off a websocket connection and appends their
// content to a file in destDir until the end frame arrives. The file name
// comes from the first frame; path components are stripped so a sender
// cannot write outside destDir. Returns the path of the written file.
//
// Chunks are appended in arrival order; no size or checksum verification
// happens here.
func Receive(conn *websocket.Conn, destDir string) (string, error) {
	var destPath string

	for {
		var frame ChunkFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return destPath, err
		}

		if destPath == "" {
			destPath = filepath.Join(destDir, filepath.Base(frame.Filename))
		}

		if frame.End {
			// Zero-length transfers still produce the file.
			f, err := os.OpenFile(destPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return destPath, err
			}
			f.Close()
			return destPath, nil
		}

		f, err := os.OpenFile(destPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return destPath, err
		}
		if _, err := f.Write(decodeContent(frame.Content)); err != nil {
			f.Close()
			return destPath, err
		}
		f.Close()
	}
}
