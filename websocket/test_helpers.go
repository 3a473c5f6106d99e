// Package websocket test_helpers.go
package websocket

// InitTest resets the package globals between tests.
func InitTest() {
	for len(broadcast) > 0 {
		<-broadcast
	}
	connectionsMu.Lock()
	connections = make(map[*Connection]bool)
	connectionsMu.Unlock()
}
