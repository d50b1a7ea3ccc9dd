package renderer

const meshVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uViewProj;
uniform mat4 uModel;
uniform mat3 uNormalMatrix;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	vec4 world = uModel * vec4(aPosition, 1.0);
	vWorldPos = world.xyz;
	vNormal = normalize(uNormalMatrix * aNormal);
	vTexCoord = aTexCoord;
	gl_Position = uViewProj * world;
}
`

const meshFragmentShader = `#version 410 core
#define MAX_POINT_LIGHTS 32

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uColor;
uniform vec3 uEmissive;
uniform float uOpacity;
uniform int uUnlit;

uniform vec3 uCameraPos;
uniform vec3 uAmbient;
uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];
uniform float uPointLightIntensities[MAX_POINT_LIGHTS];

out vec4 FragColor;

void main() {
	vec4 tex = texture(uTexture, vTexCoord);
	vec3 albedo = uColor * tex.rgb;
	float alpha = uOpacity * tex.a;

	if (uUnlit == 1) {
		FragColor = vec4(albedo + uEmissive, alpha);
		return;
	}

	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 viewDir = normalize(uCameraPos - vWorldPos);

	vec3 light = uAmbient;
	for (int i = 0; i < uPointLightCount; i++) {
		vec3 toLight = uPointLightPositions[i] - vWorldPos;
		float dist = length(toLight);
		vec3 l = toLight / max(dist, 0.0001);

		// Inverse-square falloff with a smooth window at the range.
		float atten = uPointLightIntensities[i] / max(dist * dist, 0.01);
		float range = uPointLightRanges[i];
		if (range > 0.0) {
			float w = clamp(1.0 - pow(dist / range, 4.0), 0.0, 1.0);
			atten *= w * w;
		}

		float diff = max(dot(n, l), 0.0);
		vec3 h = normalize(l + viewDir);
		float spec = pow(max(dot(n, h), 0.0), 32.0) * 0.25;
		light += uPointLightColors[i] * atten * (diff + spec);
	}

	FragColor = vec4(albedo * light + uEmissive, alpha);
}
`

const maskVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;
uniform mat4 uModel;

void main() {
	gl_Position = uViewProj * uModel * vec4(aPosition, 1.0);
}
`

const maskFragmentShader = `#version 410 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0);
}
`

// fullscreenVertexShader emits a covering triangle from gl_VertexID.
const fullscreenVertexShader = `#version 410 core
out vec2 vUV;

void main() {
	vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	vUV = pos;
	gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

const outlineFragmentShader = `#version 410 core
in vec2 vUV;

uniform sampler2D uScene;
uniform sampler2D uMask;
uniform vec2 uTexel;
uniform vec3 uEdgeColor;
uniform float uThickness;
uniform float uStrength;

out vec4 FragColor;

void main() {
	vec4 base = texture(uScene, vUV);
	float inside = texture(uMask, vUV).r;

	float edge = 0.0;
	int radius = int(ceil(uThickness));
	for (int x = -radius; x <= radius; x++) {
		for (int y = -radius; y <= radius; y++) {
			vec2 offset = vec2(x, y);
			float d = length(offset);
			if (d > uThickness) {
				continue;
			}
			float m = texture(uMask, vUV + offset * uTexel).r;
			edge = max(edge, m * (1.0 - d / (uThickness + 1.0)));
		}
	}
	edge *= 1.0 - inside;

	FragColor = vec4(base.rgb + uEdgeColor * edge * uStrength, 1.0);
}
`

// fxaaFragmentShader is a compact FXAA: luma edge detection along the
// dominant gradient with a single blend step.
const fxaaFragmentShader = `#version 410 core
in vec2 vUV;

uniform sampler2D uInput;
uniform vec2 uResolution;

out vec4 FragColor;

const float FXAA_SPAN_MAX = 8.0;
const float FXAA_REDUCE_MUL = 1.0 / 8.0;
const float FXAA_REDUCE_MIN = 1.0 / 128.0;

float luma(vec3 c) {
	return dot(c, vec3(0.299, 0.587, 0.114));
}

void main() {
	vec3 rgbNW = texture(uInput, vUV + vec2(-1.0, -1.0) * uResolution).rgb;
	vec3 rgbNE = texture(uInput, vUV + vec2(1.0, -1.0) * uResolution).rgb;
	vec3 rgbSW = texture(uInput, vUV + vec2(-1.0, 1.0) * uResolution).rgb;
	vec3 rgbSE = texture(uInput, vUV + vec2(1.0, 1.0) * uResolution).rgb;
	vec3 rgbM = texture(uInput, vUV).rgb;

	float lumaNW = luma(rgbNW);
	float lumaNE = luma(rgbNE);
	float lumaSW = luma(rgbSW);
	float lumaSE = luma(rgbSE);
	float lumaM = luma(rgbM);
	float lumaMin = min(lumaM, min(min(lumaNW, lumaNE), min(lumaSW, lumaSE)));
	float lumaMax = max(lumaM, max(max(lumaNW, lumaNE), max(lumaSW, lumaSE)));

	vec2 dir;
	dir.x = -((lumaNW + lumaNE) - (lumaSW + lumaSE));
	dir.y = ((lumaNW + lumaSW) - (lumaNE + lumaSE));

	float dirReduce = max((lumaNW + lumaNE + lumaSW + lumaSE) * (0.25 * FXAA_REDUCE_MUL), FXAA_REDUCE_MIN);
	float rcpDirMin = 1.0 / (min(abs(dir.x), abs(dir.y)) + dirReduce);
	dir = clamp(dir * rcpDirMin, vec2(-FXAA_SPAN_MAX), vec2(FXAA_SPAN_MAX)) * uResolution;

	vec3 rgbA = 0.5 * (
		texture(uInput, vUV + dir * (1.0 / 3.0 - 0.5)).rgb +
		texture(uInput, vUV + dir * (2.0 / 3.0 - 0.5)).rgb);
	vec3 rgbB = rgbA * 0.5 + 0.25 * (
		texture(uInput, vUV + dir * -0.5).rgb +
		texture(uInput, vUV + dir * 0.5).rgb);

	float lumaB = luma(rgbB);
	if (lumaB < lumaMin || lumaB > lumaMax) {
		FragColor = vec4(rgbA, 1.0);
	} else {
		FragColor = vec4(rgbB, 1.0);
	}
}
`
