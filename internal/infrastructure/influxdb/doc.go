// Package influxdb records hub time series in InfluxDB v2.
//
// Writes are non-blocking: points are buffered by the client library and
// flushed every batch_size points or flush_interval seconds, whichever
// comes first. Write failures arrive asynchronously on the SetOnError
// callback. Writing on a closed client is a silent no-op.
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // run without time series
//	}
//	defer client.Close()
//
//	client.WritePoint("device_access",
//	    map[string]string{"device_id": "light-1", "operation": "turn_on"},
//	    map[string]any{"count": 1},
//	    time.Now())
package influxdb
