//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package moduleconfig

func NoVectorizer() Config {
	return Config{Kind: KindVectorizer, Name: "none"}
}

type Text2VecOpenAIOptions struct {
	Model                   string
	Dimensions              *int
	BaseURL                 string
	VectorizeCollectionName *bool
}

func Text2VecOpenAI(opts Text2VecOpenAIOptions) Config {
	return Config{Kind: KindVectorizer, Name: "text2vec-openai", Config: params{}.
		str("model", opts.Model).
		intPtr("dimensions", opts.Dimensions).
		str("baseURL", opts.BaseURL).
		boolPtr("vectorizeClassName", opts.VectorizeCollectionName).
		build()}
}

type Text2VecCohereOptions struct {
	Model    string
	Truncate string
	BaseURL  string
}

func Text2VecCohere(opts Text2VecCohereOptions) Config {
	return Config{Kind: KindVectorizer, Name: "text2vec-cohere", Config: params{}.
		str("model", opts.Model).
		str("truncate", opts.Truncate).
		str("baseURL", opts.BaseURL).
		build()}
}

type Text2VecTransformersOptions struct {
	PoolingStrategy string
	InferenceURL    string
}

func Text2VecTransformers(opts Text2VecTransformersOptions) Config {
	return Config{Kind: KindVectorizer, Name: "text2vec-transformers", Config: params{}.
		str("poolingStrategy", opts.PoolingStrategy).
		str("inferenceUrl", opts.InferenceURL).
		build()}
}

type Text2VecOllamaOptions struct {
	APIEndpoint string
	Model       string
}

func Text2VecOllama(opts Text2VecOllamaOptions) Config {
	return Config{Kind: KindVectorizer, Name: "text2vec-ollama", Config: params{}.
		str("apiEndpoint", opts.APIEndpoint).
		str("model", opts.Model).
		build()}
}

type Multi2VecClipOptions struct {
	ImageFields  []string
	TextFields   []string
	InferenceURL string
}

func Multi2VecClip(opts Multi2VecClipOptions) Config {
	return Config{Kind: KindVectorizer, Name: "multi2vec-clip", Config: params{}.
		strs("imageFields", opts.ImageFields).
		strs("textFields", opts.TextFields).
		str("inferenceUrl", opts.InferenceURL).
		build()}
}

type GenerativeOpenAIOptions struct {
	Model       string
	MaxTokens   *int
	Temperature *float64
	BaseURL     string
}

func GenerativeOpenAI(opts GenerativeOpenAIOptions) Config {
	return Config{Kind: KindGenerative, Name: "generative-openai", Config: params{}.
		str("model", opts.Model).
		intPtr("maxTokens", opts.MaxTokens).
		floatPtr("temperature", opts.Temperature).
		str("baseURL", opts.BaseURL).
		build()}
}

type GenerativeAnthropicOptions struct {
	Model         string
	MaxTokens     *int
	Temperature   *float64
	StopSequences []string
}

func GenerativeAnthropic(opts GenerativeAnthropicOptions) Config {
	return Config{Kind: KindGenerative, Name: "generative-anthropic", Config: params{}.
		str("model", opts.Model).
		intPtr("maxTokens", opts.MaxTokens).
		floatPtr("temperature", opts.Temperature).
		strs("stopSequences", opts.StopSequences).
		build()}
}

type GenerativeCohereOptions struct {
	Model       string
	Temperature *float64
}

func GenerativeCohere(opts GenerativeCohereOptions) Config {
	return Config{Kind: KindGenerative, Name: "generative-cohere", Config: params{}.
		str("model", opts.Model).
		floatPtr("temperature", opts.Temperature).
		build()}
}

type GenerativeOllamaOptions struct {
	APIEndpoint string
	Model       string
}

func GenerativeOllama(opts GenerativeOllamaOptions) Config {
	return Config{Kind: KindGenerative, Name: "generative-ollama", Config: params{}.
		str("apiEndpoint", opts.APIEndpoint).
		str("model", opts.Model).
		build()}
}

func RerankerCohere(model string) Config {
	return Config{Kind: KindReranker, Name: "reranker-cohere", Config: params{}.
		str("model", model).
		build()}
}

func RerankerTransformers() Config {
	return Config{Kind: KindReranker, Name: "reranker-transformers"}
}
