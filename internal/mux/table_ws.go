package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/room"
	"holdem-server/pkg/token"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// seat identities are never shown to other players
const seatIDLength = 16

// checkOrigin allows any origin unless origins are configured
func (m *Mux) checkOrigin(r *http.Request) bool {
	if len(m.allowedOrigins) == 0 {
		return true
	}

	return m.allowedOrigins[r.Header.Get("Origin")]
}

func (m *Mux) getTableNameWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: m.checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).WithField("remoteAddr", remoteAddr(r)).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		seatID, err := token.Generate(seatIDLength)
		if err != nil {
			logrus.WithError(err).Error("could not generate a seat id")
			_ = conn.Close()
			return
		}

		client := room.NewClient(seatID, mux.Vars(r)["name"])
		if err := m.pitBoss.ClientConnected(client); err != nil {
			logrus.WithError(err).WithField("client", client.String()).Error("could not connect client")
			_ = conn.Close()
			return
		}

		logrus.WithField("client", client.String()).WithField("remoteAddr", remoteAddr(r)).Info("client connected")

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(conn, client, waitForCloseFrame)
		m.webSocketReadLoop(conn, client)
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case <-waitForCloseFrame:
			return
		case msg := <-client.SendChan():
			if logrus.IsLevelEnabled(logrus.TraceLevel) {
				msgBytes, _ := json.Marshal(msg)
				logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn, client *room.Client) {
	for {
		var msg playable.PayloadIn
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsUnexpectedCloseError(err) {
				logrus.WithError(err).WithField("client", client.String()).Debug("could not read JSON")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		client.ReceivedMessage(&msg)
	}
}
