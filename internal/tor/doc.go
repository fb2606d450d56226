// Package tor routes page fetches through the Tor network.
//
// A Client wraps a SOCKS5 dialer from golang.org/x/net/proxy and hands out
// HTTP clients for the fetcher. EmbeddedTor starts a private Tor daemon with
// github.com/nao1215/tornago for users without a local Tor service.
package tor
