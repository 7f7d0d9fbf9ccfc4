package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsLLMBytesSent is base for counter metric for total bytes sent to LLM
	StatsLLMBytesSent = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_bytes_sent",
		Help:         "stats_llm_bytes_sent provides total bytes sent to LLM",
		RequiredTags: []string{"model"},
	}

	StatsLLMBytesReceived = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_bytes_received",
		Help:         "stats_llm_bytes_received provides total bytes received from LLM",
		RequiredTags: []string{"model"},
	}

	StatsLLMInputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_input_tokens",
		Help:         "stats_llm_input_tokens provides total input tokens sent to LLM",
		RequiredTags: []string{"model"},
	}

	StatsLLMOutputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_output_tokens",
		Help:         "stats_llm_output_tokens provides total output tokens received from LLM",
		RequiredTags: []string{"model"},
	}

	StatsLLMCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_calls_failed",
		Help:         "stats_llm_calls_failed provides total failed or unavailable LLM calls",
		RequiredTags: []string{"model", "kind"},
	}

	StatsContextQueriesSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_context_queries_succeeded",
		Help:         "stats_context_queries_succeeded provides total context store queries succeeded",
		RequiredTags: []string{"driver"},
	}

	StatsContextQueriesFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_context_queries_failed",
		Help:         "stats_context_queries_failed provides total context store queries failed or unavailable",
		RequiredTags: []string{"driver", "kind"},
	}

	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls that returned degraded text",
		RequiredTags: []string{"tool", "kind"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsRPCMethodNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_rpc_method_not_found",
		Help:         "stats_rpc_method_not_found provides total requests with unknown JSON-RPC method",
		RequiredTags: []string{"method"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfLLMCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_llm_call",
		Help:         "perf_llm_call provides duration of LLM invocation",
		RequiredTags: []string{"model"},
	}

	PerfContextQuery = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_context_query",
		Help:         "perf_context_query provides duration of context store query",
		RequiredTags: []string{"driver"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfContextQuery,
	&PerfLLMCall,
	&PerfToolCall,
	&StatsContextQueriesFailed,
	&StatsContextQueriesSucceeded,
	&StatsLLMBytesReceived,
	&StatsLLMBytesSent,
	&StatsLLMCallsFailed,
	&StatsLLMInputTokens,
	&StatsLLMOutputTokens,
	&StatsRPCMethodNotFound,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
