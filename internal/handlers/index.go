// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package handlers

import "net/http"

// indexPage is a minimal built-in viewer; the real presentation layer
// lives outside this process and only consumes /stream.
const indexPage = `<!doctype html>
<html>
	<head>
		<meta charset="utf-8" />
		<title>NetPulse</title>
		<style>
			body { font-family: monospace; margin: 2em; background: #111; color: #ddd; }
			#health { font-size: 2em; }
			.anomaly { color: #f66; }
		</style>
	</head>
	<body>
		<h1>NetPulse</h1>
		<div>health <span id="health">-</span></div>
		<div>throughput <span id="mbps">-</span> Mbps, <span id="pps">-</span> pkts/s</div>
		<div>conns tcp=<span id="tcp">-</span> udp=<span id="udp">-</span> est=<span id="est">-</span></div>
		<div id="anomalies"></div>
		<script>
			const es = new EventSource('/stream');
			es.onmessage = (e) => {
				const p = JSON.parse(e.data);
				document.getElementById('health').textContent = p.health.toFixed(1);
				document.getElementById('mbps').textContent = p.throughput_mbps.toFixed(2);
				document.getElementById('pps').textContent = p.pkts_per_sec.toFixed(2);
				document.getElementById('tcp').textContent = p.conns.tcp;
				document.getElementById('udp').textContent = p.conns.udp;
				document.getElementById('est').textContent = p.conns.established;
				document.getElementById('anomalies').innerHTML =
					p.anomalies.map(a => '<div class="anomaly">' + a.type + ': ' + a.msg + '</div>').join('');
			};
		</script>
	</body>
</html>`

// Index serves the built-in dashboard page.
func Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
