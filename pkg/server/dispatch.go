package server

import (
	"wsgate/pkg/http"
	"wsgate/pkg/router"
	"wsgate/pkg/websocket"
)

// Dispatch returns the response for a parsed request. WebSocket upgrade
// requests go to the upgrader; everything else is looked up in routes.
// upgraded is true only for a successful 101 response.
func Dispatch(req *http.Request, routes *router.Table, upgrader *websocket.Upgrader) (resp *http.Response, upgraded bool) {
	if req.IsWebSocket() {
		resp, err := upgrader.Handshake(req)
		if err != nil {
			return http.ErrorResponse(err), false
		}
		return resp, true
	}

	route, err := routes.Lookup(req.Target)
	if err != nil {
		return http.ErrorResponse(err), false
	}
	return route.Response(), false
}
